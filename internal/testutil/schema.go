package testutil

// Type definition fixtures shared by package tests.

// MovieSDL is a small graph with one properties relationship.
const MovieSDL = `
type Movie {
  id: ID! @id
  title: String
  released: Int
  tags: [String]
  createdAt: DateTime @timestamp(operations: [CREATE])
  actors: [Actor] @relationship(type: "ACTED_IN", direction: IN, properties: "ActedIn")
}

type Actor {
  name: String
  movies: [Movie] @relationship(type: "ACTED_IN", direction: OUT, properties: "ActedIn")
}

interface ActedIn {
  screenTime: Int
  role: String
}
`

// GenreSDL has a relationship without properties and a user enum.
const GenreSDL = `
enum Rating {
  G
  PG
  R
}

type Movie {
  title: String!
  rating: Rating
  genres: [Genre] @relationship(type: "IN_GENRE", direction: OUT)
}

type Genre {
  name: String!
}
`
