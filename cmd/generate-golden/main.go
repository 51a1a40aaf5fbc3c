package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/bits"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Index       uint64 `json:"index"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

func main() {
	outputDir := flag.String("out", "internal/rationals/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "rationals_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Interesting cases:
	// - the first levels of the tree
	// - level boundaries (2^k - 2 is the integer k/1, 2^k - 1 is 1/(k+1))
	// - the last values representable in int8 and uint8
	// - the millionth index
	targets := []uint64{
		0, 1, 2, 3, 4, 5, 6, 7, 10, 14, 15, 20, 31, 32, 50, 63, 64, 100,
		127, 128, 255, 256, 500, 1000, 1023, 1024, 1320, 2047, 4095, 4688,
		5000, 10000, 65535, 65536, 100000, 262143, 500000, 999999, 1000000,
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, idx := range targets {
		num, den := treeTerm(idx)
		data = append(data, GoldenData{
			Index:       idx,
			Numerator:   num.String(),
			Denominator: den.String(),
		})
		fmt.Printf("Generated q(%d) = %s/%s\n", idx, num, den)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// treeTerm computes the value at a zero-based index by walking the
// Calkin–Wilf tree from the root along the binary digits of idx+1: a 0 bit
// goes to the left child a/(a+b), a 1 bit to the right child (a+b)/b.
// It shares no code with the enumerator, so it serves as our oracle.
func treeTerm(idx uint64) (*big.Int, *big.Int) {
	a, b := big.NewInt(1), big.NewInt(1)
	k := idx + 1
	for i := bits.Len64(k) - 2; i >= 0; i-- {
		if k&(1<<uint(i)) == 0 {
			b.Add(a, b)
		} else {
			a.Add(a, b)
		}
	}
	return a, b
}
