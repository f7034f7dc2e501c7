package render

import (
	"fmt"

	"github.com/hexforge/hexforge/model"
	"github.com/hexforge/hexforge/naming"
)

// PortData is the view for the repository-port template.
type PortData struct {
	Package string
	Imports []string
	Entity  string
	Name    string
	IdType  string
}

// NewPortData projects an aggregate root onto the repository-port view.
func NewPortData(pkgs Packages, e *model.EntitySpec) *PortData {
	return &PortData{
		Package: pkgs.Port,
		Imports: []string{pkgs.Model + "." + e.Name},
		Entity:  e.Name,
		Name:    e.Name + "Repository",
		IdType:  idType(e),
	}
}

// AdapterData is the view for the repository-adapter template.
type AdapterData struct {
	Package string
	Imports []string
	Entity  string
	Name    string
	Jpa     string
	Port    string
	IdType  string
}

// NewAdapterData projects an aggregate root onto the repository-adapter view.
func NewAdapterData(pkgs Packages, e *model.EntitySpec) *AdapterData {
	return &AdapterData{
		Package: pkgs.Persistence,
		Imports: sortedSet(map[string]struct{}{
			pkgs.Model + "." + e.Name:               {},
			pkgs.Port + "." + e.Name + "Repository": {},
		}),
		Entity: e.Name,
		Name:   e.Name + "RepositoryAdapter",
		Jpa:    e.Name + "JpaRepository",
		Port:   e.Name + "Repository",
		IdType: idType(e),
	}
}

// ServiceData is the view for the application-service template.
type ServiceData struct {
	Package     string
	Imports     []string
	Entity      string
	Name        string
	Port        string
	Create      string
	Update      string
	Response    string
	IdType      string
	Assignments []string
}

// NewServiceData projects an aggregate root onto the application-service
// view. Assignments carries the setter statements both apply methods copy
// from their command.
func NewServiceData(pkgs Packages, e *model.EntitySpec) *ServiceData {
	data := &ServiceData{
		Package:  pkgs.Service,
		Entity:   e.Name,
		Name:     e.Name + "Service",
		Port:     e.Name + "Repository",
		Create:   "Create" + e.Name + "Command",
		Update:   "Update" + e.Name + "Command",
		Response: e.Name + "Response",
		IdType:   idType(e),
	}

	set := map[string]struct{}{
		pkgs.Model + "." + e.Name:           {},
		pkgs.Port + "." + data.Port:         {},
		pkgs.Command + "." + data.Create:    {},
		pkgs.Command + "." + data.Update:    {},
		pkgs.Response + "." + data.Response: {},
		"java.util.List":                    {},
		"java.util.NoSuchElementException":  {},
	}
	for _, f := range e.ProjectableFields() {
		data.Assignments = append(data.Assignments,
			fmt.Sprintf("entity.set%s(command.%s());", naming.Pascal(f.Name), f.Name))
	}

	data.Imports = sortedSet(set)
	return data
}

// ControllerData is the view for the REST controller template.
type ControllerData struct {
	Package  string
	Imports  []string
	Entity   string
	Name     string
	Service  string
	Create   string
	Update   string
	Response string
	IdType   string
	Path     string
}

// NewControllerData projects an aggregate root onto the controller view.
// The resource path is the kebab-case plural of the entity name.
func NewControllerData(pkgs Packages, e *model.EntitySpec) *ControllerData {
	data := &ControllerData{
		Package:  pkgs.Web,
		Entity:   e.Name,
		Name:     e.Name + "Controller",
		Service:  e.Name + "Service",
		Create:   "Create" + e.Name + "Command",
		Update:   "Update" + e.Name + "Command",
		Response: e.Name + "Response",
		IdType:   idType(e),
		Path:     "/api/" + naming.Kebab(naming.Plural(e.Name)),
	}

	data.Imports = sortedSet(map[string]struct{}{
		pkgs.Service + "." + data.Service:   {},
		pkgs.Command + "." + data.Create:    {},
		pkgs.Command + "." + data.Update:    {},
		pkgs.Response + "." + data.Response: {},
		"java.util.List":                    {},
	})
	return data
}

// ModuleData is the view for the module-level templates: the Spring Boot
// application class, the Maven pom, and the application config.
type ModuleData struct {
	Module      string
	BasePackage string
	Artifact    string
	MainClass   string
}

// NewModuleData projects the resolved model onto the module-level view.
func NewModuleData(m *model.ResolvedModel) *ModuleData {
	return &ModuleData{
		Module:      m.Module,
		BasePackage: m.BasePackage,
		Artifact:    naming.Kebab(m.Module),
		MainClass:   naming.Pascal(m.Module) + "Application",
	}
}
