package entity

import "strings"

// Role rol de un usuario dentro de su supermercado.
type Role string

// Roles válidos (conjunto cerrado).
const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleCashier       Role = "Cashier"
	RoleFinancial     Role = "Financial"
)

// Roles lista los roles en orden estable.
var Roles = []Role{RoleAdministrator, RoleManager, RoleCashier, RoleFinancial}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, ok := roleAreas[r]
	return ok
}

// Area zona funcional del sistema; cada una agrupa rutas del frontend y grupos del API.
type Area string

// Áreas del sistema.
const (
	AreaSales         Area = "sales"
	AreaRegistrations Area = "registrations"
	AreaFinancial     Area = "financial"
	AreaManagement    Area = "management"
)

// Areas lista las áreas en orden estable.
var Areas = []Area{AreaSales, AreaRegistrations, AreaFinancial, AreaManagement}

// areaPrefixes rutas del frontend de cada área (ruta localizada + alias en inglés).
var areaPrefixes = map[Area][]string{
	AreaSales:         {"/vendas", "/sales"},
	AreaRegistrations: {"/cadastros", "/registrations"},
	AreaFinancial:     {"/financeiro", "/financial"},
	AreaManagement:    {"/gestao", "/management"},
}

// roleAreas tabla explícita rol -> áreas permitidas. Se edita aquí, nunca se descubre en runtime.
var roleAreas = map[Role][]Area{
	RoleAdministrator: {AreaSales, AreaRegistrations, AreaFinancial, AreaManagement},
	RoleManager:       {AreaSales, AreaRegistrations, AreaFinancial, AreaManagement},
	RoleCashier:       {AreaSales},
	RoleFinancial:     {AreaFinancial},
}

// AreasFor devuelve las áreas del rol (nil si el rol no existe).
func AreasFor(r Role) []Area {
	return append([]Area(nil), roleAreas[r]...)
}

// CanAccess informa si el rol tiene el área.
func CanAccess(r Role, a Area) bool {
	for _, allowed := range roleAreas[r] {
		if allowed == a {
			return true
		}
	}
	return false
}

// PrefixesFor devuelve los prefijos de ruta permitidos para el rol.
func PrefixesFor(r Role) []string {
	var out []string
	for _, a := range roleAreas[r] {
		out = append(out, areaPrefixes[a]...)
	}
	return out
}

// SecuredPrefixes devuelve todos los prefijos protegidos (unión de todas las áreas).
func SecuredPrefixes() []string {
	var out []string
	for _, a := range Areas {
		out = append(out, areaPrefixes[a]...)
	}
	return out
}

// HasPathPrefix compara por segmentos: "/sales" cubre "/sales" y "/sales/x", no "/salesx".
func HasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/' || strings.HasSuffix(prefix, "/")
}
