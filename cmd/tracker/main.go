package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"example.com/fittracker/internal/training"
)

var packages = []training.Package{
	{Code: "SWM", Data: []float64{720, 1, 80, 25, 40}},
	{Code: "RUN", Data: []float64{15000, 1, 75}},
	{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
}

func main() {
	if err := run(os.Stdout, packages); err != nil {
		log.Fatalf("tracker: %v", err)
	}
}

// run prints one summary line per package and stops at the first package
// that cannot be read.
func run(w io.Writer, pkgs []training.Package) error {
	for _, pkg := range pkgs {
		t, err := training.ReadPackage(pkg.Code, pkg.Data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, t.ShowTrainingInfo().Message()); err != nil {
			return err
		}
	}
	return nil
}
