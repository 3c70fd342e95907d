// Package render resolves the directives of a parsed document to generators
// and assembles the transformed document.
//
// A [Registry] maps each namespace to a [Generator], whose [Catalog] describes
// the actions it implements and the parameters they accept. For every
// directive, in document order, a [Pipeline]:
//
//  1. looks up the generator of its namespace and the action in its catalog;
//  2. replaces variable references with values from the variable table;
//  3. validates the parameters against the action's [Schema];
//  4. calls the generator with the validated [Call] and a [Context].
//
// The directive then renders as its original header, the generated content
// and its original footer. Its children are rendered only if the generator
// asks for them with [Context.RenderChildren], so a generator returning its
// rendered children leaves the document unchanged.
//
// A generator can retrieve the rendered content of a preceding sibling whose
// action is a named container with [Context.Section].
//
// Rendering stops at the first error.
package render
