//go:build mage

// Package main contains Mage build targets for tabi.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/xuri/excelize/v2"
)

const (
	binDir  = "bin"
	binName = "tabi"
	// sampleDir holds the generated example workbook and page.
	sampleDir = "sample"
)

var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, "."); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Sample writes an example itinerary workbook and renders it with the built binary.
func Sample() error {
	mg.Deps(Build)

	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Time", "Activity", "Note"},
		{"08:00", "Breakfast at the ryokan", "Served in the room"},
		{"10:30", "Kiyomizu-dera", "Wear walking shoes", "Buy omamori"},
		{"", "Free time in Gion"},
		{"23:30", "Joya no kane", "Temple bell at midnight"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return err
		}
	}

	input := filepath.Join(sampleDir, "Dec31.xlsx")
	if err := f.SaveAs(input); err != nil {
		return fmt.Errorf("saving %s: %w", input, err)
	}

	return sh.RunV(filepath.Join(binDir, binName), input)
}

// Clean removes build and sample output.
func Clean() error {
	for _, dir := range []string{binDir, sampleDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
