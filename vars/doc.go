// Package vars collects the variables that directive parameters refer to with
// $name.
//
// A [Source] produces a [Table] of scalar values. Sources are combined with
// [Merge], where the first source to define a name wins and explicit
// assignments from the command line override every source.
package vars
