// Command avltree is a small demo driver for the on-disk AVL ordered set
// engine. It is explicitly out of scope for the engine itself (see
// spec.md §1): a real caller embeds pkg/avltree directly rather than
// shelling out to this binary.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/philiprodriguez/avltree/pkg/avltree"
	"github.com/philiprodriguez/avltree/pkg/codec"
)

func main() {
	path := flag.String("file", "data/set.avl", "path to the backing file")
	flag.Parse()

	// Initialize the engine.
	engine, err := avltree.Open(*path, codec.Int64())
	if err != nil {
		log.Fatalf("Failed to open engine: %v", err)
	}
	defer engine.Close()

	// Insert a batch of values.
	values := []int64{42, 17, 99, 3, 56, 71, 8, 23}

	fmt.Println("Inserting values...")
	for _, v := range values {
		inserted, err := engine.Add(v)
		if err != nil {
			log.Fatalf("Failed to insert %d: %v", v, err)
		}
		if !inserted {
			fmt.Printf("%d already present\n", v)
		}
	}

	// Walk the set in order.
	fmt.Println("\nOrdered contents:")
	it := engine.Iterator()
	for {
		has, err := it.HasNext()
		if err != nil {
			log.Fatalf("HasNext: %v", err)
		}
		if !has {
			break
		}
		v, err := it.Next()
		if err != nil {
			log.Fatalf("Next: %v", err)
		}
		fmt.Println(v)
	}

	// Test membership.
	probes := []int64{23, 1000}
	fmt.Println("\nMembership checks:")
	for _, v := range probes {
		found, err := engine.Contains(v)
		if err != nil {
			log.Fatalf("Contains(%d): %v", v, err)
		}
		if found {
			fmt.Printf("Found: %d\n", v)
		} else {
			fmt.Printf("Not found: %d\n", v)
		}
	}

	// Ordered neighbor queries.
	if higher, found, err := engine.Higher(42); err != nil {
		log.Fatalf("Higher: %v", err)
	} else if found {
		fmt.Printf("\nHigher(42) = %d\n", higher)
	}

	// Removal-family operations are explicitly unsupported.
	if err := engine.Remove(42); err != nil {
		fmt.Printf("Remove(42): %v\n", err)
	}
}
