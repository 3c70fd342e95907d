// Package builtin implements the generator registered under the rdmx
// namespace, which is also the namespace of directives written as ":action".
//
// Actions:
//
//	section name:string
//		A named container. Its children are rendered and passed through, so
//		a later directive can refer to the rendered body by name.
//
//	eval section:string [lang:string]
//		Evaluates the body of the closest preceding section as an expr-lang
//		expression with the variable table as its environment, and emits
//		the result in a fenced code block tagged with lang (default "text").
//		A Markdown code fence around the body is removed first.
//
//	print value:any
//		Emits the text of a scalar, typically a $variable.
package builtin
