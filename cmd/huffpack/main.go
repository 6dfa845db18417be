package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/packer"
)

var errUsage = errors.New("missing -i or -o")

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffpack: ")
	err := run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

func run(name string, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputFile := fs.String("i", "", "input file path")
	outputFile := fs.String("o", "", "output file path")
	unpack := fs.Bool("d", false, "unpack the input instead of packing it")
	policyName := fs.String("policy", huffpack.StandardHeap.String(), "heap policy: standard or reference")
	printCodes := fs.Bool("print", false, "print the code of every symbol to stdout")
	dumpCodes := fs.Bool("dump", false, "write a debugging dump of the code to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-d] [-policy standard|reference] [-print] [-dump] -i input -o output\n", name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *inputFile == "" || *outputFile == "" {
		fs.Usage()
		return errUsage
	}

	if *unpack {
		return packer.UnpackFile(*inputFile, *outputFile)
	}

	policy, err := huffpack.ParseHeapPolicy(*policyName)
	if err != nil {
		return err
	}

	enc, err := packer.PackFile(*inputFile, *outputFile, &huffpack.Options{Policy: policy})
	if err != nil {
		return err
	}

	if *printCodes {
		if _, err := enc.Print(stdout); err != nil {
			return err
		}
	}
	if *dumpCodes {
		if _, err := enc.Dump(stderr); err != nil {
			return err
		}
	}
	return nil
}
