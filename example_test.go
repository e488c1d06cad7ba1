package wayfinder_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/domain"
)

func ExampleNew() {
	loader, err := catalog.Loader()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := wayfinder.New("", wayfinder.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state := eng.Start(ctx, "example")
	state, _ = eng.SelectIndex(ctx, state, 1) // A RAG pipeline
	state, _ = eng.SelectIndex(ctx, state, 0) // Simple

	node, _ := eng.Current(state)
	rec := node.(*domain.Result).Recommendation
	fmt.Println(rec.Name)
	fmt.Println(rec.Install[0])
	fmt.Println(state.History)
	// Output:
	// wesichain-rag
	// cargo add wesichain-rag
	// [start rag-complexity wesichain-rag]
}
