package sara_test

import (
	"context"
	"fmt"
	"log"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/dsl"
)

// ExampleNew demonstrates driving a small voice flow purely as a Go library,
// without any flow file, store or backend.
func ExampleNew() {
	// 1. Define the flow with the fluent builder.
	b := dsl.New("demo")
	b.Add("start").Start().Go("accueil")
	b.Add("accueil").Say("Bonjour, ici le cabinet dentaire.").Go("prenom")
	b.Add("prenom").
		Ask("Quel est votre prénom ?", "prenom", domain.FieldName).
		Confirm("Merci {{prenom}}.").
		Go("fin")
	b.Add("fin").End()

	graph, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize the engine.
	engine, err := sara.New(graph)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Begin the call: the greeting is spoken and the flow suspends
	// on the first question.
	ctx := context.Background()
	st, out, err := engine.Begin(ctx, "demo-call")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Text)

	out, err = engine.Advance(ctx, st, "Marie")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Text)
	fmt.Println("done:", st.Done())

	// Output:
	// Bonjour, ici le cabinet dentaire. Quel est votre prénom ?
	// Merci Marie.
	// done: true
}
