package entity

// User representa al repartidor autenticado. Se lee del sistema remoto y solo
// cambia por re-autenticación; esta aplicación nunca lo crea ni lo destruye.
type User struct {
	ID       string
	FullName string
	Email    string
	Phone    string
	Vehicle  string // descriptor opcional del vehículo (ej. "moto", "bicicleta")
}
