package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexforge/hexforge/model"
)

// resolvedFixture runs a small module through the resolver so views see
// exactly what real callers hand them.
func resolvedFixture(t *testing.T) *model.ResolvedModel {
	t.Helper()

	spec := &model.ModuleSpec{
		Name:        "orders",
		BasePackage: "com.acme.orders",
		Aggregates: []*model.AggregateSpec{{
			Name: "Order",
			Entities: []*model.EntitySpec{
				{
					Name:  "Order",
					Root:  true,
					Audit: true,
					Fields: []*model.FieldSpec{
						{Name: "id", Type: "String"},
						{Name: "status", Type: "OrderStatus"},
						{Name: "total", Type: "BigDecimal", ReadOnly: true},
						{Name: "notes", Type: "String", Hidden: true},
					},
					Relationships: []*model.RelationshipSpec{{
						Kind:     model.OneToMany,
						Target:   "OrderLine",
						Field:    "lines",
						MappedBy: "order",
						Cascade:  []model.CascadeType{model.CascadeAll},
					}},
				},
				{
					Name: "OrderLine",
					Fields: []*model.FieldSpec{
						{Name: "id", Type: "String"},
						{Name: "quantity", Type: "Integer"},
						{Name: "price", Type: "Money"},
					},
				},
			},
			ValueObjects: []*model.ValueObjectSpec{{
				Name: "Money",
				Fields: []*model.FieldSpec{
					{Name: "amount", Type: "BigDecimal"},
					{Name: "currency", Type: "String"},
				},
			}},
			Enums: []*model.EnumSpec{{
				Name:   "OrderStatus",
				Values: []string{"NEW", "PAID"},
			}},
		}},
	}

	resolved, err := model.Resolve(spec)
	require.NoError(t, err, "fixture should resolve cleanly")
	require.Len(t, resolved.Aggregates, 1, "fixture aggregate should survive resolution")
	return resolved
}

func TestNew_ParsesEmbeddedTemplates(t *testing.T) {
	r, err := New()
	require.NoError(t, err, "New() should parse the embedded template set")

	want := []string{
		"application",
		"application-config",
		"controller",
		"create-command",
		"entity",
		"enum",
		"pom",
		"repository-adapter",
		"repository-port",
		"response",
		"service",
		"update-command",
		"value-object",
	}
	assert.Equal(t, want, r.Templates(), "template set should match the embedded files")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err, "New() should not fail")

	_, err = r.Render("no-such-template", nil)
	require.Error(t, err, "unknown template IDs should be an error")
	assert.ErrorIs(t, err, ErrUnknownTemplate, "error should wrap ErrUnknownTemplate")
}

func TestNewWithOverrides(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	dir := t.TempDir()
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, "entity.tmpl"), []byte("custom entity {{ .Name }}\n"), 0o644),
		"override template should be writable")

	r, err := NewWithOverrides(dir)
	require.NoError(t, err, "overrides should parse")

	out, err := r.Render("entity", NewEntityData(pkgs, root))
	require.NoError(t, err, "overridden entity template should render")
	assert.Equal(t, "custom entity Order\n", out, "the override should replace the embedded template")

	out, err = r.Render("pom", NewModuleData(resolved))
	require.NoError(t, err, "untouched templates should still render")
	assert.Contains(t, out, "<artifactId>orders</artifactId>", "embedded templates should be unaffected")
}

func TestNewWithOverrides_MissingDir(t *testing.T) {
	r, err := NewWithOverrides(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err, "a missing override dir should not be an error")
	assert.Len(t, r.Templates(), 13, "the embedded set should be intact")
}

func TestRender_Entity(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	agg := resolved.Aggregates[0]

	r, err := New()
	require.NoError(t, err, "New() should not fail")

	out, err := r.Render("entity", NewEntityData(pkgs, agg.Root()))
	require.NoError(t, err, "entity template should render")

	assert.Contains(t, out, "package com.acme.orders.domain.model;", "entity should live in the model package")
	assert.Contains(t, out, `@Table(name = "orders")`, "table name should default to the snake plural")
	assert.Contains(t, out, "@GeneratedValue(strategy = GenerationType.UUID)", "string id should use UUID generation")
	assert.Contains(t, out, "@Enumerated(EnumType.STRING)", "enum fields should map as strings")
	assert.Contains(t, out,
		`@OneToMany(mappedBy = "order", cascade = CascadeType.ALL, fetch = FetchType.LAZY)`,
		"owning to-many side should carry mappedBy, cascade, and fetch")
	assert.Contains(t, out, "private List<OrderLine> lines;", "to-many association should be a list field")
	assert.Contains(t, out, "@PrePersist", "audited entities should manage their timestamps")
	assert.Contains(t, out, "public List<OrderLine> getLines()", "associations should have accessors")
	assert.NotContains(t, out, "private Object", "every field should have a resolved Java type")
}

func TestRender_EntityInverseSide(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	agg := resolved.Aggregates[0]

	var line *model.EntitySpec
	for _, e := range agg.Entities {
		if e.Name == "OrderLine" {
			line = e
		}
	}
	require.NotNil(t, line, "fixture should carry OrderLine")

	r, err := New()
	require.NoError(t, err, "New() should not fail")

	out, err := r.Render("entity", NewEntityData(pkgs, line))
	require.NoError(t, err, "entity template should render")

	assert.Contains(t, out, "@ManyToOne(fetch = FetchType.LAZY)", "synthesized back-reference should be lazy")
	assert.Contains(t, out, `@JoinColumn(name = "order_id")`, "back-reference should carry the derived join column")
	assert.Contains(t, out, "private Order order;", "back-reference field should be named after mappedBy")
	assert.Contains(t, out, "@Embedded", "value-object fields should embed")
}

func TestRender_Controller(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	r, err := New()
	require.NoError(t, err, "New() should not fail")

	out, err := r.Render("controller", NewControllerData(pkgs, root))
	require.NoError(t, err, "controller template should render")

	assert.Contains(t, out, `@RequestMapping("/api/orders")`, "resource path should be the kebab plural")
	assert.Contains(t, out, "import jakarta.validation.Valid;", "request bodies are bean-validated")
	assert.Contains(t, out, "@Valid @RequestBody CreateOrderCommand command", "create body should be validated")
	assert.Contains(t, out, "@Valid @RequestBody UpdateOrderCommand command", "update body should be validated")
}

func TestRender_Deterministic(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	r, err := New()
	require.NoError(t, err, "New() should not fail")

	first, err := r.Render("response", NewResponseData(pkgs, root))
	require.NoError(t, err, "response template should render")
	second, err := r.Render("response", NewResponseData(pkgs, root))
	require.NoError(t, err, "response template should render again")

	assert.Equal(t, first, second, "rendering the same model twice should be byte-identical")
}

func TestRender_EveryTemplateWithRealData(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	agg := resolved.Aggregates[0]
	root := agg.Root()
	module := NewModuleData(resolved)

	r, err := New()
	require.NoError(t, err, "New() should not fail")

	tests := []struct {
		id   string
		data any
	}{
		{"application", module},
		{"application-config", module},
		{"pom", module},
		{"entity", NewEntityData(pkgs, root)},
		{"value-object", NewValueObjectData(pkgs, agg.ValueObjects[0])},
		{"enum", NewEnumData(pkgs, resolved.Enums[0])},
		{"repository-port", NewPortData(pkgs, root)},
		{"repository-adapter", NewAdapterData(pkgs, root)},
		{"service", NewServiceData(pkgs, root)},
		{"controller", NewControllerData(pkgs, root)},
		{"create-command", NewCreateCommandData(pkgs, root)},
		{"update-command", NewUpdateCommandData(pkgs, root)},
		{"response", NewResponseData(pkgs, root)},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			out, err := r.Render(tt.id, tt.data)
			require.NoError(t, err, "template %q should render", tt.id)
			assert.NotEmpty(t, out, "template %q should produce output", tt.id)
			assert.NotContains(t, out, "<no value>", "template %q should reference only existing view fields", tt.id)
		})
	}
}
