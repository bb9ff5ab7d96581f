// Package harness runs link conformance scenarios.
//
// A scenario configures a link builder, runs a list of steps that each
// produce a table, search or rows link, and checks every result against
// its expectation. Table links are also decoded again to confirm the
// clause list survives the round trip.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	config:
//	  base_url: https://diagnostics.example.org
//	  membership_parens: literal
//	steps:
//	  - kind: table
//	    entity: umdm_sample
//	    filters:
//	      gender: female
//	      country: Australia, New Zealand
//	    expect:
//	      clauses: [gender==female, "country=in=(Australia,New Zealand)"]
//	  - kind: search
//	    entity: variantdb_variant
//	    term: BRCA1
//	    expect:
//	      url: https://diagnostics.example.org/menu/plugins/dataexplorer?...
//	  - kind: table
//	    entity: umdm_sample
//	    filters: {country: "a,,b"}
//	    expect:
//	      error: EMPTY_MEMBER
//
// # Golden Files
//
// RunWithGolden snapshots the produced links under testdata/golden. To
// regenerate them, run:
//
//	go test ./internal/harness -update
package harness
