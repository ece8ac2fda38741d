package constants

// User roles
const (
	ROLE_ADMIN  = "admin"
	ROLE_WAITER = "camarero"
	ROLE_COOK   = "cocinero"
)

// Table statuses
const (
	TABLE_FREE        = "libre"
	TABLE_OCCUPIED    = "ocupada"
	TABLE_RESERVED    = "reservada"
	TABLE_MAINTENANCE = "mantenimiento"
)

// Order and order-line statuses
const (
	ORDER_RECEIVED  = "recibido"
	ORDER_PREPARING = "en_preparacion"
	ORDER_READY     = "listo"
	ORDER_DELIVERED = "entregado"
	ORDER_CANCELED  = "cancelado"
)

// Reservation statuses
const (
	RESERVATION_PENDING   = "pendiente"
	RESERVATION_CONFIRMED = "confirmada"
	RESERVATION_CANCELED  = "cancelada"
	RESERVATION_COMPLETED = "completada"
	RESERVATION_ARRIVED   = "cliente_llego"
	RESERVATION_NO_SHOW   = "cliente_no_llego"
)

// Product types
const (
	PRODUCT_FOOD      = "comida"
	PRODUCT_DRINK     = "bebida"
	PRODUCT_DESSERT   = "postre"
	PRODUCT_STARTER   = "entrada"
	PRODUCT_SIDE      = "complemento"
)

// Notification channels
const (
	CHANNEL_KITCHEN = "kitchen"
	CHANNEL_WAITERS = "camareros"
	CHANNEL_ADMIN   = "admin"
)

// Event types carried in the "tipo" field of broadcast messages
const (
	EVENT_NEW_ORDER          = "nuevo_pedido"
	EVENT_ORDER_UPDATE       = "actualizacion_pedido"
	EVENT_NEW_ITEM           = "nuevo_detalle"
	EVENT_DELETE_ITEM        = "eliminar_detalle"
	EVENT_ITEM_UPDATE        = "actualizacion_detalle"
	EVENT_NEW_RESERVATION    = "nueva_reserva"
	EVENT_RESERVATION_UPDATE = "actualizacion_reserva"
	EVENT_DELETE_RESERVATION = "eliminar_reserva"
	EVENT_MENU_UPDATE        = "actualizacion_menu"
	EVENT_TABLE_CLOSED       = "cierre_mesa"
)

// The conflict check against an existing reservation always uses this fixed
// window, not the existing reservation's configured duration.
const RESERVATION_WINDOW_MINUTES = 120

// Default reservation duration in minutes when none is given.
const RESERVATION_DEFAULT_DURATION = 120
