package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexforge/hexforge/model"
)

func TestPackagesFor(t *testing.T) {
	pkgs := PackagesFor("com.acme.orders")

	assert.Equal(t, "com.acme.orders", pkgs.Base, "base package should pass through")
	assert.Equal(t, "com.acme.orders.domain.model", pkgs.Model, "model package should nest under domain")
	assert.Equal(t, "com.acme.orders.domain.port", pkgs.Port, "port package should nest under domain")
	assert.Equal(t, "com.acme.orders.application.service", pkgs.Service, "service package should nest under application")
	assert.Equal(t, "com.acme.orders.infrastructure.web", pkgs.Web, "web package should nest under infrastructure")
}

func TestNewCreateCommandData_NestedShapes(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	data := NewCreateCommandData(pkgs, root)

	assert.Equal(t, "CreateOrderCommand", data.Record.Name, "record should be named after the entity")
	assert.Contains(t, data.Record.Components, "OrderStatus status", "projectable fields should become components")
	assert.Contains(t, data.Record.Components, "List<OrderLinePayload> lines", "enriched lists should become nested payload lists")
	assert.NotContains(t, data.Record.Components, "BigDecimal total", "read-only fields should not appear in commands")
	assert.NotContains(t, data.Record.Components, "String notes", "hidden fields should not appear in commands")

	require.Len(t, data.Nested, 1, "one nested payload record per distinct target")
	nested := data.Nested[0]
	assert.Equal(t, "OrderLinePayload", nested.Name, "nested record should carry the Payload suffix")
	assert.Equal(t, []string{"Integer quantity", "Money price"}, nested.Components,
		"nested components should be the target's projectable fields")
	assert.Empty(t, nested.FromArgs, "command records have no from factory")

	assert.Contains(t, data.Imports, "java.util.List", "nested lists need the List import")
	assert.Contains(t, data.Imports, "com.acme.orders.domain.model.OrderStatus", "enum components need their model import")
	assert.Contains(t, data.Imports, "com.acme.orders.domain.model.Money", "value-object components need their model import")
}

func TestNewUpdateCommandData_FlatShape(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	data := NewUpdateCommandData(pkgs, root)

	assert.Equal(t, "UpdateOrderCommand", data.Record.Name, "record should be named after the entity")
	assert.Equal(t, []string{"OrderStatus status"}, data.Record.Components, "update commands carry flat fields only")
	assert.Empty(t, data.Nested, "update commands have no nested records")
}

func TestNewResponseData_Shape(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	data := NewResponseData(pkgs, root)

	assert.Equal(t, "OrderResponse", data.Record.Name, "record should be named after the entity")
	assert.Equal(t, "String id", data.Record.Components[0], "identity leads the response")
	assert.Contains(t, data.Record.Components, "BigDecimal total", "read-only fields surface in responses")
	assert.NotContains(t, data.Record.Components, "String notes", "hidden fields never surface")
	assert.Contains(t, data.Record.Components, "Instant createdAt", "audited entities expose their timestamps")
	assert.Contains(t, data.Record.Components, "List<OrderLineResponse> lines", "enriched lists surface as nested responses")

	assert.Equal(t, "entity.getId()", data.Record.FromArgs[0], "from factory should start at the identity")
	assert.Contains(t, data.Record.FromArgs,
		"entity.getLines() == null ? List.of() : entity.getLines().stream().map(OrderLineResponse::from).toList()",
		"list arguments should map through the nested record's from factory")

	require.Len(t, data.Nested, 1, "one nested record per distinct target")
	assert.Equal(t, "OrderLineResponse", data.Nested[0].Name, "nested record should carry the Response suffix")
	assert.Equal(t, "OrderLine", data.Nested[0].Entity, "nested record should map its target entity")
	require.NotEmpty(t, data.Nested[0].FromArgs, "nested responses carry a from factory")

	assert.Contains(t, data.Imports, "com.acme.orders.domain.model.Order", "from factory needs the entity import")
	assert.Contains(t, data.Imports, "com.acme.orders.domain.model.OrderLine", "nested from factories need their entity imports")
	assert.Contains(t, data.Imports, "java.time.Instant", "audit timestamps need the Instant import")
}

func TestFlattenPayloads_DiamondDeduplicates(t *testing.T) {
	leafFields := []*model.FieldSpec{{
		Name: "note", Type: "String",
		Resolved: &model.TypeRef{Name: "String", Class: model.ClassScalar},
	}}
	entity := &model.EntitySpec{
		Name: "A",
		Fields: []*model.FieldSpec{{
			Name: "id", Type: "String",
			Resolved: &model.TypeRef{Name: "String", Class: model.ClassScalar},
		}},
		Enrichment: []*model.EnrichedRelationship{
			{
				Target: "B", Field: "bs",
				Children: []*model.EnrichedRelationship{{Target: "D", Field: "ds", Fields: leafFields}},
			},
			{
				Target: "C", Field: "cs",
				Children: []*model.EnrichedRelationship{{Target: "D", Field: "ds"}},
			},
		},
	}

	data := NewCreateCommandData(PackagesFor("com.acme.app"), entity)

	var names []string
	for _, nested := range data.Nested {
		names = append(names, nested.Name)
	}
	assert.Equal(t, []string{"BPayload", "DPayload", "CPayload"}, names,
		"flattening should visit pre-order and emit each target once")

	for _, nested := range data.Nested {
		if nested.Name == "DPayload" {
			assert.Equal(t, []string{"String note"}, nested.Components,
				"the first visit through B should decide D's shape")
		}
	}
}

func TestValidations_NormalizeAndImport(t *testing.T) {
	entity := &model.EntitySpec{
		Name: "Customer",
		Fields: []*model.FieldSpec{
			{
				Name: "id", Type: "String",
				Resolved: &model.TypeRef{Name: "String", Class: model.ClassScalar},
			},
			{
				Name: "name", Type: "String",
				Validations: []string{"NotBlank", "@Size(max = 40)"},
				Resolved:    &model.TypeRef{Name: "String", Class: model.ClassScalar},
			},
		},
	}
	pkgs := PackagesFor("com.acme.app")

	command := NewCreateCommandData(pkgs, entity)
	assert.Contains(t, command.Record.Components, "@NotBlank @Size(max = 40) String name",
		"bare validation names should gain the @ prefix, prefixed ones pass through")
	assert.Contains(t, command.Imports, "jakarta.validation.constraints.*",
		"validated commands need the constraints import")

	entityData := NewEntityData(pkgs, entity)
	require.Len(t, entityData.Fields, 1, "the identity field renders from the template, not the view")
	assert.Equal(t, []string{"@NotBlank", "@Size(max = 40)", `@Column(name = "name")`},
		entityData.Fields[0].Annotations, "validations should precede persistence annotations")
	assert.Contains(t, entityData.Imports, "jakarta.validation.constraints.*",
		"validated entities need the constraints import")

	response := NewResponseData(pkgs, entity)
	assert.Contains(t, response.Record.Components, "String name", "responses carry no validations")
	assert.NotContains(t, response.Imports, "jakarta.validation.constraints.*",
		"responses never import validation constraints")
}

func TestNewServiceData_Assignments(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	data := NewServiceData(pkgs, root)

	assert.Equal(t, "OrderService", data.Name, "service should be named after the entity")
	assert.Equal(t, []string{"entity.setStatus(command.status());"}, data.Assignments,
		"apply methods should copy each projectable field")
	assert.Contains(t, data.Imports, "com.acme.orders.domain.port.OrderRepository", "service depends on the port")
}

func TestNewControllerData_Path(t *testing.T) {
	resolved := resolvedFixture(t)
	pkgs := PackagesFor(resolved.BasePackage)
	root := resolved.Aggregates[0].Root()

	data := NewControllerData(pkgs, root)

	assert.Equal(t, "/api/orders", data.Path, "resource path should be the kebab plural")
	assert.Equal(t, "OrderController", data.Name, "controller should be named after the entity")
}

func TestNewModuleData(t *testing.T) {
	resolved := resolvedFixture(t)

	data := NewModuleData(resolved)

	assert.Equal(t, "orders", data.Artifact, "artifact should be the kebab module name")
	assert.Equal(t, "OrdersApplication", data.MainClass, "main class should be the Pascal module name")
}
