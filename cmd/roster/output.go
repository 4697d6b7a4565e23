package main

import (
	"fmt"
	"io"

	"github.com/jacentio/roster/store"
)

const listingHeader = "Key | Name | Branch | Level | Total | Avg | Grade"

func printSummaries(w io.Writer, rows []store.Summary) {
	fmt.Fprintln(w, listingHeader)
	for _, s := range rows {
		fmt.Fprintf(w, "%s | %s | %s | %s | %d | %d | %s\n",
			s.Key, s.Name, s.Branch, s.Level, s.Total, s.Average, s.Grade)
	}
	fmt.Fprintf(w, "(%d records)\n", len(rows))
}
