package service

import (
	"context"
	"fmt"
	"strings"

	"craftynet/api/internal/model"
)

// Guard runs before an insert and may veto it.
type Guard func(ctx context.Context, store Store, rec model.Record) error

// Messages are the user-facing texts a resource answers with on failure.
type Messages struct {
	List      string
	NotFound  string
	Create    string
	Duplicate string
}

// Resource declares one collection exposed under /api/<Path>.
type Resource struct {
	Path  string
	Tag   string
	Table string
	// Columns lists the insert columns in the order New().Values() returns them.
	Columns []string
	Lookup  bool
	// New returns an empty payload for create requests; nil disables create.
	New      func() model.Record
	Guard    Guard
	Schema   any
	Messages Messages
}

func (r Resource) CanCreate() bool { return r.New != nil }

func (r Resource) listSQL() string {
	return "SELECT * FROM " + r.Table
}

func (r Resource) getSQL() string {
	return "SELECT * FROM " + r.Table + " WHERE id = ?"
}

func (r Resource) insertSQL() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(r.Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", r.Table, strings.Join(r.Columns, ", "), marks)
}

// Resources is the table every route and OpenAPI path is generated from.
func Resources() []Resource {
	return []Resource{
		{
			Path:    "users",
			Tag:     "Usuarios",
			Table:   "usuarios",
			Columns: []string{"username", "email", "dni", "password"},
			New:     func() model.Record { return &model.User{} },
			Schema:  model.User{},
			Messages: Messages{
				List:   "Error al obtener usuarios",
				Create: "Error al crear usuario",
			},
		},
		{
			Path:    "students",
			Tag:     "Estudiantes",
			Table:   "estudiantes",
			Columns: []string{"carrera", "usuario_id", "universidad", "email", "dni", "bio"},
			Lookup:  true,
			New:     func() model.Record { return &model.Student{} },
			Guard:   uniqueStudent,
			Schema:  model.Student{},
			Messages: Messages{
				List:      "Error al obtener estudiantes",
				NotFound:  "Estudiante no encontrado",
				Create:    "Error al crear estudiante",
				Duplicate: "Ya existe un estudiante con ese usuario, DNI o correo.",
			},
		},
		{
			Path:    "products",
			Tag:     "Productos",
			Table:   "productos",
			Columns: []string{"estudiante_id", "categoria_id", "nombre", "descripcion", "precio", "stock"},
			New:     func() model.Record { return &model.Product{} },
			Schema:  model.Product{},
			Messages: Messages{
				List:   "Error al obtener productos",
				Create: "Error al crear producto",
			},
		},
		{
			Path:   "product-categories",
			Tag:    "Categorías de Producto",
			Table:  "categorias_producto",
			Lookup: true,
			Schema: model.ProductCategory{},
			Messages: Messages{
				List:     "Error al obtener categorías de producto",
				NotFound: "Categoría no encontrada",
			},
		},
		{
			Path:    "order-details",
			Tag:     "Detalle de Pedido",
			Table:   "detalle_pedido",
			Columns: []string{"pedido_id", "producto_id", "cantidad", "precio_unitario"},
			Lookup:  true,
			New:     func() model.Record { return &model.OrderDetail{} },
			Schema:  model.OrderDetail{},
			Messages: Messages{
				List:     "Error al obtener detalles de pedido",
				NotFound: "Detalle no encontrado",
				Create:   "Error al crear detalle de pedido",
			},
		},
		{
			Path:    "orders",
			Tag:     "Pedidos",
			Table:   "pedidos",
			Columns: []string{"usuario_id", "total", "estado"},
			Lookup:  true,
			New:     func() model.Record { return &model.Order{} },
			Schema:  model.Order{},
			Messages: Messages{
				List:     "Error al obtener pedidos",
				NotFound: "Pedido no encontrado",
				Create:   "Error al crear pedido",
			},
		},
	}
}

// uniqueStudent rejects a student whose usuario_id, dni or email is taken.
func uniqueStudent(ctx context.Context, store Store, rec model.Record) error {
	st, ok := rec.(*model.Student)
	if !ok {
		return &InternalError{Err: fmt.Errorf("unexpected student payload %T", rec)}
	}

	existing, err := store.Query(ctx,
		"SELECT * FROM estudiantes WHERE usuario_id = ? OR dni = ? OR email = ?",
		st.UsuarioID, st.DNI, st.Email,
	)
	if err != nil {
		return &InternalError{Err: err}
	}
	if len(existing) > 0 {
		return ErrDuplicate
	}
	return nil
}
