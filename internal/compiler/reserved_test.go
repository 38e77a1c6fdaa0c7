package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// reservedMessage returns the message for the named token.
func reservedMessage(table []ReservedName, token string) string {
	for _, r := range table {
		if r.Token == token {
			return r.Message
		}
	}
	return ""
}

func TestReservedNameMatches(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		reserved bool
		token    string
	}{
		{"exact PageInfo", "PageInfo", true, "PageInfo"},
		{"PageInfo prefix only", "PageInfos", false, ""},
		{"Connection suffix", "MovieConnection", true, "Connection"},
		{"Connection infix", "ConnectionPool", true, "Connection"},
		{"exact Node", "Node", true, "Node"},
		{"Node prefix only", "NodeType", false, ""},
		{"ordinary", "Movie", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := checkReserved(ReservedTypeNames, tt.input)
			assert.Equal(t, tt.reserved, ok)
			assert.Equal(t, tt.token, r.Token)
		})
	}
}

func TestReservedPropertyFields(t *testing.T) {
	_, ok := checkReserved(ReservedPropertyFields, "node")
	assert.True(t, ok)
	_, ok = checkReserved(ReservedPropertyFields, "cursor")
	assert.True(t, ok)
	_, ok = checkReserved(ReservedPropertyFields, "nodes")
	assert.False(t, ok)
}

func TestReservedMessageLookup(t *testing.T) {
	assert.Contains(t, reservedMessage(ReservedTypeNames, "PageInfo"), "`PageInfo` reserved")
	assert.Contains(t, reservedMessage(ReservedTypeNames, "Node"), "Relay")
	assert.Empty(t, reservedMessage(ReservedTypeNames, "Movie"))
}
