// Command h2inspect is a thin demonstration host for package project: it
// loads a constants table from CSV into a project's data registry, loads
// a byte file into a named buffer, and saves the result, using nothing
// from h2core's core packages beyond their public API.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/h2gb/h2core/datareg"
	"github.com/h2gb/h2core/project"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: h2inspect [options] file.bin

ex:
 $> h2inspect -csv consts.csv -namespace elf -table section_type ./file.bin

options:
`,
		)
		flag.PrintDefaults()
		os.Exit(1)
	}
}

var (
	flagCSV       = flag.String("csv", "", "path to a name,value CSV file of constants to load")
	flagNamespace = flag.String("namespace", datareg.DefaultNamespace, "namespace the CSV table is loaded under")
	flagTable     = flag.String("table", "constants", "name the CSV table is loaded under")
	flagLoad      = flag.String("load", "", "path to an existing saved project to resume")
	flagSave      = flag.String("save", "", "path to write the resulting project to")
	flagBuffer    = flag.String("buffer", "main", "name of the buffer to create from the input file")
)

func main() {
	log.SetPrefix("h2inspect: ")
	log.SetFlags(0)

	flag.Parse()

	if flag.NArg() < 1 && *flagLoad == "" {
		flag.Usage()
	}

	p, err := openProject(*flagLoad)
	if err != nil {
		log.Fatalf("opening project: %v", err)
	}

	if *flagCSV != "" {
		if err := loadCSVConstants(p, *flagCSV, *flagNamespace, *flagTable); err != nil {
			log.Fatalf("loading %s: %v", *flagCSV, err)
		}
		fmt.Printf("loaded constants %s/%s from %s\n", *flagNamespace, *flagTable, *flagCSV)
	}

	if flag.NArg() > 0 {
		path := flag.Arg(0)
		bytes, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		if err := p.CreateBuffer(*flagBuffer, bytes, 0); err != nil {
			log.Fatalf("creating buffer %s: %v", *flagBuffer, err)
		}
		fmt.Printf("created buffer %q (%d bytes) from %s\n", *flagBuffer, len(bytes), path)
	}

	fmt.Printf("project %s: %d buffer(s), %d action(s) logged\n", p.ID, len(p.Buffers), len(p.ActionLog))

	if *flagSave != "" {
		if err := saveProject(p, *flagSave); err != nil {
			log.Fatalf("saving %s: %v", *flagSave, err)
		}
		fmt.Printf("saved project to %s\n", *flagSave)
	}
}

func openProject(path string) (*project.Project, error) {
	if path == "" {
		return project.New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return project.Load(f)
}

func saveProject(p *project.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Save(f)
}

// loadCSVConstants reads a two-column "name,value" CSV file (value parsed
// as a base-10 or 0x-prefixed integer) into a datareg constants table.
func loadCSVConstants(p *project.Project, path, namespace, table string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	values := make(map[string]int64)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		n, err := strconv.ParseInt(record[1], 0, 64)
		if err != nil {
			return fmt.Errorf("parsing value for %q: %w", record[0], err)
		}
		values[record[0]] = n
	}
	return p.DataRegistry.LoadDatum(datareg.KindConstants, namespace, table, values)
}
