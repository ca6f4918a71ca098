package main

import (
	"fmt"
	"io"

	"github.com/cqkv/propmigrate"
	"gopkg.in/alecthomas/kingpin.v2"
)

func dumpCommand(app *kingpin.Application) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("dump", "print the in use records of a legacy property store")
	storeDir := cmd.Arg("store-dir", "directory holding the legacy store").Required().String()
	limit := cmd.Flag("limit", "stop after this many records, 0 prints all").Default("0").Uint64()

	return cmd, func(string) int {
		r, err := propmigrate.OpenReader(storePath(*storeDir), readerOptions()...)
		if err != nil {
			return fail(err)
		}
		defer r.Close()

		var n uint64
		for *limit == 0 || n < *limit {
			record, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fail(err)
			}
			n++

			data, err := record.Data()
			if err != nil {
				return fail(err)
			}
			fmt.Printf("%s key=%d %s\n", record, data.KeyIndexID, data.Value)
		}
		return 0
	}
}
