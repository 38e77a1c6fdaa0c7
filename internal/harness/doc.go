// Package harness runs conformance scenarios against the schema toolkit.
//
// A scenario is a YAML file naming a type definition file, an optional
// neoschema.cue config and a list of steps. Each step translates a Where
// or connection Where filter, or emits event metadata, and may carry an
// expected Cypher fragment. Assertions then check the augmented schema
// and the step trace:
//
//	name: movie_filters
//	description: Node and connection filters over the movie graph
//	schema: ../schemas/movie.graphql
//	steps:
//	  - name: title
//	    type: Movie
//	    where: { title: Matrix }
//	    expect:
//	      cypher: this.title = $this_where.title
//	assertions:
//	  - type: schema_contains
//	    text: "input MovieWhere {"
//
// Every run is deterministic, so the trace can be compared byte for byte
// against a golden file (see RunWithGolden).
package harness
