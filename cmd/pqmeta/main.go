// Command pqmeta prints the metadata footer of parquet files.
//
// Usage:
//
//	pqmeta [-schema] [-columns] [-row-groups] file.parquet ...
//
// Without flags the command prints the file summary, the schema, and the
// column table. The flags restrict the output to the named sections.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pqmeta/pqmeta"
	"github.com/pqmeta/pqmeta/format"
)

const (
	magic       = "PAR1"
	footerExtra = 8 // 4 bytes of footer length + 4 bytes of magic
)

func main() {
	schemaOnly := flag.Bool("schema", false, "print only the schema")
	columnsOnly := flag.Bool("columns", false, "print only the column table")
	rowGroupsOnly := flag.Bool("row-groups", false, "print only the row group tables")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [-schema] [-columns] [-row-groups] file.parquet ...\n", os.Args[0])
		os.Exit(2)
	}

	all := !*schemaOnly && !*columnsOnly && !*rowGroupsOnly
	exitCode := 0

	for _, path := range flag.Args() {
		fmd, err := readFooter(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}

		schema, err := pqmeta.NewSchema(fmd.Schema)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}

		if flag.NArg() > 1 {
			fmt.Printf("%s:\n", path)
		}
		if all {
			printSummary(fmd)
		}
		if all || *schemaOnly {
			fmt.Println(schema)
		}
		if all || *columnsOnly {
			printColumns(schema)
		}
		if *rowGroupsOnly {
			printRowGroups(fmd)
		}
	}

	os.Exit(exitCode)
}

// readFooter reads and decodes the metadata footer at the end of the file.
func readFooter(path string) (*format.FileMetaData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := stat.Size()
	if size < int64(2*len(magic)+footerExtra) {
		return nil, fmt.Errorf("file is too short to be a parquet file (%d bytes)", size)
	}

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, err
	}
	if string(head) != magic {
		return nil, fmt.Errorf("missing %q magic at the start of the file", magic)
	}

	trailer := make([]byte, footerExtra)
	if _, err := f.ReadAt(trailer, size-footerExtra); err != nil {
		return nil, err
	}
	if string(trailer[4:]) != magic {
		return nil, fmt.Errorf("missing %q magic at the end of the file", magic)
	}

	footerSize := int64(binary.LittleEndian.Uint32(trailer[:4]))
	if footerSize > size-int64(len(magic)+footerExtra) {
		return nil, fmt.Errorf("footer length %d exceeds the file size", footerSize)
	}

	footer := make([]byte, footerSize)
	if _, err := f.ReadAt(footer, size-footerExtra-footerSize); err != nil {
		return nil, err
	}

	fmd := new(format.FileMetaData)
	if err := format.DecodeFileMetaData(footer, fmd); err != nil {
		return nil, err
	}
	return fmd, nil
}

func printSummary(fmd *format.FileMetaData) {
	fmt.Printf("version: %d\n", fmd.Version)
	fmt.Printf("rows: %d\n", fmd.NumRows)
	fmt.Printf("row groups: %d\n", len(fmd.RowGroups))
	if fmd.CreatedBy != "" {
		fmt.Printf("created by: %s\n", fmd.CreatedBy)
	}
	for _, kv := range fmd.KeyValueMetadata {
		fmt.Printf("metadata: %s=%s\n", kv.Key, kv.Value)
	}
	fmt.Println()
}

func printColumns(schema *pqmeta.Schema) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Column", "Type", "Logical", "Repetition", "Def", "Rep")

	for _, col := range schema.Columns() {
		logical := ""
		if col.Element.LogicalType != nil {
			logical = col.Element.LogicalType.String()
		} else if col.Element.ConvertedType != nil {
			logical = col.Element.ConvertedType.String()
		}
		repetition := format.Required
		if col.Element.RepetitionType != nil {
			repetition = *col.Element.RepetitionType
		}
		table.Append([]string{
			col.PathString(),
			physicalType(col),
			logical,
			repetition.String(),
			strconv.Itoa(int(col.MaxDefinitionLevel)),
			strconv.Itoa(int(col.MaxRepetitionLevel)),
		})
	}

	table.Render()
	fmt.Println()
}

func physicalType(col *pqmeta.Column) string {
	if col.Type == format.FixedLenByteArray {
		return fmt.Sprintf("%s(%d)", col.Type, col.TypeLength)
	}
	return col.Type.String()
}

func printRowGroups(fmd *format.FileMetaData) {
	for i := range fmd.RowGroups {
		rg := &fmd.RowGroups[i]
		fmt.Printf("row group %d: %d rows, %d bytes\n", i, rg.NumRows, rg.TotalByteSize)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Column", "Codec", "Compressed", "Uncompressed", "Values", "Encodings")

		for j := range rg.Columns {
			md := &rg.Columns[j].MetaData
			encodings := ""
			for k, enc := range md.Encoding {
				if k > 0 {
					encodings += ","
				}
				encodings += enc.String()
			}
			table.Append([]string{
				pathString(md.PathInSchema),
				md.Codec.String(),
				strconv.FormatInt(md.TotalCompressedSize, 10),
				strconv.FormatInt(md.TotalUncompressedSize, 10),
				strconv.FormatInt(md.NumValues, 10),
				encodings,
			})
		}

		table.Render()
		fmt.Println()
	}
}

func pathString(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}
