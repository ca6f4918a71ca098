package main

import (
	"fmt"

	"github.com/cqkv/propmigrate"
	"github.com/dustin/go-humanize"
	"gopkg.in/alecthomas/kingpin.v2"
)

func chainsCommand(app *kingpin.Application) (*kingpin.CmdClause, kingpinHandler) {
	cmd := app.Command("chains", "group the records of a legacy property store into property chains")
	storeDir := cmd.Arg("store-dir", "directory holding the legacy store").Required().String()
	verbose := cmd.Flag("verbose", "print the ids of every chain").Short('v').Bool()

	return cmd, func(string) int {
		records, err := propmigrate.ReadPropertyStore(storePath(*storeDir), readerOptions()...)
		if err != nil {
			return fail(err)
		}

		idx := propmigrate.BuildIndex(records)
		defer idx.Close()

		chains, err := propmigrate.Chains(idx)
		if err != nil {
			return fail(err)
		}
		orphans := propmigrate.Orphans(idx, chains)

		if *verbose {
			for _, chain := range chains {
				fmt.Printf("%d: %v\n", chain.Head, chain.IDs)
			}
		}
		fmt.Printf("records: %s\n", humanize.Comma(int64(len(records))))
		fmt.Printf("chains:  %s\n", humanize.Comma(int64(len(chains))))
		fmt.Printf("orphans: %s\n", humanize.Comma(int64(len(orphans))))
		if len(orphans) > 0 {
			return 2
		}
		return 0
	}
}
