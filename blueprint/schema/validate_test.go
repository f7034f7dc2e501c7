package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
version: "0.1.0"
module: orders
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        root: true
        fields:
          - name: id
            type: UUID
          - name: status
            type: String
        relationships:
          - kind: OneToMany
            target: OrderLine
            field: lines
            cascade: [ALL]
            fetch: LAZY
      - name: OrderLine
        fields:
          - name: id
            type: UUID
          - name: quantity
            type: Integer
    enums:
      - name: OrderStatus
        values: [NEW, PAID, SHIPPED]
`

func TestValidateYAML_AcceptsValidDocument(t *testing.T) {
	err := ValidateYAML("blueprint.yaml", []byte(validDoc))
	require.NoError(t, err, "valid document should satisfy the schema")
}

func TestValidateYAML_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name: "unknown field rejected by closed definition",
			source: `
version: "0.1.0"
module: orders
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        root: true
        fields:
          - name: id
            type: UUID
        relationships:
          - kind: ManyToOne
            target: Customer
            isInverse: true
`,
			wantMsg: "isInverse",
		},
		{
			name: "invalid relationship kind",
			source: `
version: "0.1.0"
module: orders
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        fields:
          - name: id
            type: UUID
        relationships:
          - kind: HasMany
            target: OrderLine
`,
			wantMsg: "kind",
		},
		{
			name: "missing module",
			source: `
version: "0.1.0"
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        fields:
          - name: id
            type: UUID
`,
			wantMsg: "module",
		},
		{
			name: "version not semver",
			source: `
version: latest
module: orders
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        fields:
          - name: id
            type: UUID
`,
			wantMsg: "version",
		},
		{
			name: "base package not lowercase dotted",
			source: `
version: "0.1.0"
module: orders
basePackage: Com.Acme.Orders
aggregates:
  - name: Order
    entities:
      - name: Order
        fields:
          - name: id
            type: UUID
`,
			wantMsg: "basePackage",
		},
		{
			name: "empty aggregates list",
			source: `
version: "0.1.0"
module: orders
basePackage: com.acme.orders
aggregates: []
`,
			wantMsg: "aggregates",
		},
		{
			name: "entity without fields",
			source: `
version: "0.1.0"
module: orders
basePackage: com.acme.orders
aggregates:
  - name: Order
    entities:
      - name: Order
        fields: []
`,
			wantMsg: "fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML("blueprint.yaml", []byte(tt.source))
			require.Error(t, err, "document should be rejected")
			assert.ErrorIs(t, err, ErrSchemaViolation, "error should wrap ErrSchemaViolation")
			assert.Contains(t, err.Error(), tt.wantMsg, "error should point at the offending field")
		})
	}
}

func TestValidateYAML_RejectsMalformedYAML(t *testing.T) {
	err := ValidateYAML("blueprint.yaml", []byte("{{not yaml"))
	require.Error(t, err, "malformed YAML should be rejected")
	assert.ErrorIs(t, err, ErrSchemaViolation, "error should wrap ErrSchemaViolation")
}
