/*
Package dsl provides a fluent builder for constructing conversation graphs in
code, as an alternative to loading them from YAML with pkg/graphio.

	b := dsl.New("demo")
	b.Add("node_start").Start().Go("node_hello")
	b.Add("node_hello").Ask("Quel est votre prénom ?", "prenom", domain.FieldName).Go("node_end")
	b.Add("node_end").End()
	g, err := b.Build()
*/
package dsl
