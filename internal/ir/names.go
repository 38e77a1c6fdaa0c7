package ir

import (
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

var pluralizer = pluralize.NewClient()

// Plural returns the root query field name of a type, e.g. "Movie" ->
// "movies", "JobPlan" -> "jobPlans".
func Plural(typeName string) string {
	return pluralizer.Plural(strcase.ToLowerCamel(typeName))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NodeNames holds the generated names of one node type.
type NodeNames struct {
	Plural             string
	Where              string
	Options            string
	Sort               string
	CreateInput        string
	UpdateInput        string
	CreateResponse     string
	UpdateResponse     string
	AggregateSelection string
	Aggregate          string
	Create             string
	Update             string
	Delete             string
}

// NamesFor derives the generated names of n.
func NamesFor(n *Node) NodeNames {
	plural := Plural(n.Name)
	upper := upperFirst(plural)
	return NodeNames{
		Plural:             plural,
		Where:              n.Name + "Where",
		Options:            n.Name + "Options",
		Sort:               n.Name + "Sort",
		CreateInput:        n.Name + "CreateInput",
		UpdateInput:        n.Name + "UpdateInput",
		CreateResponse:     "Create" + upper + "MutationResponse",
		UpdateResponse:     "Update" + upper + "MutationResponse",
		AggregateSelection: n.Name + "AggregateSelection",
		Aggregate:          plural + "Aggregate",
		Create:             "create" + upper,
		Update:             "update" + upper,
		Delete:             "delete" + upper,
	}
}

// Types lists the generated type names, as opposed to root field names.
func (n NodeNames) Types() []string {
	return []string{
		n.Where,
		n.Options,
		n.Sort,
		n.CreateInput,
		n.UpdateInput,
		n.CreateResponse,
		n.UpdateResponse,
		n.AggregateSelection,
	}
}

// ConnectionName returns the connection type of a relationship field,
// e.g. MovieActorsConnection.
func ConnectionName(n *Node, rf *RelationField) string {
	return n.Name + upperFirst(rf.Name) + "Connection"
}

// RelationshipName returns the edge type of a relationship field, e.g.
// MovieActorsRelationship.
func RelationshipName(n *Node, rf *RelationField) string {
	return n.Name + upperFirst(rf.Name) + "Relationship"
}

// ConnectionWhereName returns the connection filter input of a
// relationship field, e.g. MovieActorsConnectionWhere.
func ConnectionWhereName(n *Node, rf *RelationField) string {
	return ConnectionName(n, rf) + "Where"
}

// RelationshipTypes lists the generated type names of a properties entity.
func RelationshipTypes(r *Relationship) []string {
	return []string{r.Name + "Where", r.Name + "Sort"}
}

// AggregateSelectionName returns the per-scalar aggregate selection type,
// e.g. IntAggregateSelection.
func AggregateSelectionName(scalar string) string {
	return scalar + "AggregateSelection"
}

// AggregateKinds lists the aggregatable scalars in output order, with the
// selection fields each supports.
var AggregateKinds = []struct {
	Scalar string
	Fields []string
}{
	{ScalarID, []string{"shortest", "longest"}},
	{ScalarString, []string{"shortest", "longest"}},
	{ScalarInt, []string{"max", "min", "average", "sum"}},
	{ScalarFloat, []string{"max", "min", "average", "sum"}},
	{ScalarBigInt, []string{"max", "min", "average", "sum"}},
	{ScalarDateTime, []string{"min", "max"}},
	{ScalarLocalDateTime, []string{"min", "max"}},
	{ScalarLocalTime, []string{"min", "max"}},
	{ScalarTime, []string{"min", "max"}},
	{ScalarDuration, []string{"min", "max"}},
}

// SharedTypes are generated once for any schema with at least one node.
// SortDirection is generated for every schema.
var SharedTypes = []string{"SortDirection", "PageInfo", "CreateInfo", "UpdateInfo", "DeleteInfo"}

// GeneratedTypes maps every type name the augmented schema may declare for
// m to the entity it is generated for. Shared types map to "".
func GeneratedTypes(m *Model) map[string]string {
	out := map[string]string{"SortDirection": ""}
	if len(m.Nodes) == 0 {
		return out
	}
	for _, name := range SharedTypes {
		out[name] = ""
	}
	for _, k := range AggregateKinds {
		out[AggregateSelectionName(k.Scalar)] = ""
	}
	for _, n := range m.Nodes {
		for _, name := range NamesFor(n).Types() {
			out[name] = n.Name
		}
		for _, rf := range n.RelationFields {
			out[ConnectionName(n, rf)] = n.Name
			out[RelationshipName(n, rf)] = n.Name
			out[ConnectionWhereName(n, rf)] = n.Name
		}
	}
	for _, r := range m.Relationships {
		for _, name := range RelationshipTypes(r) {
			out[name] = r.Name
		}
	}
	return out
}
