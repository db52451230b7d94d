package model

// Record is a payload that can be inserted as one row and echoed back with
// its generated id.
type Record interface {
	Values() []any
	SetID(id int64)
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	DNI      string `json:"dni" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (u *User) Values() []any  { return []any{u.Username, u.Email, u.DNI, u.Password} }
func (u *User) SetID(id int64) { u.ID = id }

// The remaining payloads use pointer fields: a field missing from the body
// is stored as NULL and left out of the echoed response.

type Student struct {
	ID          int64   `json:"id"`
	Carrera     *string `json:"carrera,omitempty"`
	UsuarioID   *int64  `json:"usuario_id,omitempty"`
	Universidad *string `json:"universidad,omitempty"`
	Email       *string `json:"email,omitempty"`
	DNI         *string `json:"dni,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

func (s *Student) Values() []any {
	return []any{s.Carrera, s.UsuarioID, s.Universidad, s.Email, s.DNI, s.Bio}
}
func (s *Student) SetID(id int64) { s.ID = id }

// ProductCategory is read-only: categories are seeded outside the API.
type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           int64   `json:"id"`
	EstudianteID *int64  `json:"estudiante_id,omitempty"`
	CategoriaID  *int64  `json:"categoria_id,omitempty"`
	Nombre       *string `json:"nombre,omitempty"`
	Descripcion  *string `json:"descripcion,omitempty"`
	Precio       *Money  `json:"precio,omitempty"`
	Stock        *int    `json:"stock,omitempty"`
}

func (p *Product) Values() []any {
	return []any{p.EstudianteID, p.CategoriaID, p.Nombre, p.Descripcion, p.Precio, p.Stock}
}
func (p *Product) SetID(id int64) { p.ID = id }

// Order.Estado is a free-text status label such as "pagado".
type Order struct {
	ID        int64   `json:"id"`
	UsuarioID *int64  `json:"usuario_id,omitempty"`
	Total     *Money  `json:"total,omitempty"`
	Estado    *string `json:"estado,omitempty"`
}

func (o *Order) Values() []any  { return []any{o.UsuarioID, o.Total, o.Estado} }
func (o *Order) SetID(id int64) { o.ID = id }

type OrderDetail struct {
	ID             int64  `json:"id"`
	PedidoID       *int64 `json:"pedido_id,omitempty"`
	ProductoID     *int64 `json:"producto_id,omitempty"`
	Cantidad       *int   `json:"cantidad,omitempty"`
	PrecioUnitario *Money `json:"precio_unitario,omitempty"`
}

func (d *OrderDetail) Values() []any {
	return []any{d.PedidoID, d.ProductoID, d.Cantidad, d.PrecioUnitario}
}
func (d *OrderDetail) SetID(id int64) { d.ID = id }
