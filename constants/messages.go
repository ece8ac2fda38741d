package constants

// User-facing messages
const (
	ERROR_INTERNAL_ERROR = "Error interno del servidor"
	ERROR_INPUT          = "Entrada no válida"
	DATA_INPUT_IS_NOT_NUMBER = "El parámetro debe ser un número"

	MISSING_LOGIN_INPUT = "Debe indicar usuario y contraseña"
	INVALID_USERNAME    = "Nombre de usuario o contraseña incorrectos"
	INVALID_PASSWORD    = "Nombre de usuario o contraseña incorrectos"
	ACCOUNT_NOT_ACTIVE  = "Usuario inactivo"
	NOT_PERMISSION      = "No tiene permisos para realizar esta acción"

	TABLE_NOT_FOUND       = "Mesa no encontrada"
	TABLE_NUMBER_EXISTS   = "El número de mesa ya existe"
	TABLE_NOT_AVAILABLE   = "La mesa no está disponible"
	TABLE_HAS_ORDERS      = "No se puede eliminar la mesa porque tiene pedidos activos"
	TABLE_HAS_RESERVATION = "No se puede eliminar la mesa porque tiene reservas futuras"

	ORDER_NOT_FOUND       = "Pedido no encontrado"
	ORDER_NEEDS_ITEMS     = "El pedido debe tener al menos un producto"
	ORDER_ALREADY_CLOSED  = "No se puede modificar un pedido entregado o cancelado"
	ORDER_ITEM_NOT_FOUND  = "Detalle de pedido no encontrado"
	ORDER_LAST_ITEM       = "No se puede eliminar el último producto del pedido. Cancele el pedido completo."
	ORDER_QUANTITY_INVALID = "La cantidad debe ser mayor que cero"
	COOK_STATES_ONLY       = "Los cocineros solo pueden cambiar el estado a 'en_preparacion' o 'listo'"

	PRODUCT_NOT_FOUND     = "Producto no encontrado o no disponible"
	PRODUCT_IN_ORDERS     = "No se puede eliminar el producto porque está en pedidos activos"
	CATEGORY_NOT_FOUND    = "Categoría no encontrada"
	CATEGORY_HAS_PRODUCTS = "No se puede eliminar la categoría porque tiene productos"
	CATEGORY_NAME_EXISTS  = "El nombre de la categoría ya existe"

	RESERVATION_NOT_FOUND     = "Reserva no encontrada"
	RESERVATION_PAST_DATE     = "La fecha de reserva debe ser en el futuro"
	RESERVATION_PARTY_INVALID = "El número de personas debe ser mayor que cero"
	RESERVATION_DURATION_INVALID = "La duración debe ser mayor que cero"
	RESERVATION_TABLE_SMALL   = "La mesa no tiene suficiente capacidad para el número de personas"
	RESERVATION_CONFLICT      = "La mesa ya está reservada en el horario solicitado"

	BILL_NOT_FOUND = "Cuenta no encontrada"

	USER_NOT_FOUND       = "Usuario no encontrado"
	USERNAME_EXISTS      = "El nombre de usuario ya existe"
	EMAIL_EXISTS         = "El email ya está registrado"
	PASSWORD_MISMATCH    = "Las contraseñas no coinciden"
)
