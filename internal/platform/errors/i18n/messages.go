package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeRequestTooLarge       = "REQUEST_TOO_LARGE"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidSignupData     = "INVALID_SIGNUP_DATA"
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeTicketTitleEmpty      = "TICKET_TITLE_EMPTY"
	CodeTicketInvalidStatus   = "TICKET_INVALID_STATUS"
	CodeTicketInvalidPriority = "TICKET_INVALID_PRIORITY"
	CodeTicketInvalidID       = "TICKET_INVALID_ID"
	CodeNotFound              = "NOT_FOUND"
	CodeStorageCorrupt        = "STORAGE_CORRUPT"
	CodeUnknown               = "UNKNOWN"
)

var builtinMessages = map[string]map[Code]string{
	BaseLocale: {
		CodeInvalidRequest:        "The request could not be read",
		CodeRequestTooLarge:       "The request body is too large",
		CodeInvalidCredentials:    "Invalid email or password",
		CodeInvalidSignupData:     "Invalid signup data",
		CodeUnauthenticated:       "Sign in to continue",
		CodeTicketTitleEmpty:      "Title is required",
		CodeTicketInvalidStatus:   "Invalid status value: {{.Status}}",
		CodeTicketInvalidPriority: "Invalid priority value: {{.Priority}}",
		CodeTicketInvalidID:       "Invalid ticket id: {{.ID}}",
		CodeNotFound:              "The requested resource was not found",
		CodeStorageCorrupt:        "Stored data could not be read",
		CodeUnknown:               "Something went wrong. Please try again.",
	},
	"pt-BR": {
		CodeInvalidRequest:        "Não foi possível ler a requisição",
		CodeRequestTooLarge:       "O corpo da requisição é grande demais",
		CodeInvalidCredentials:    "E-mail ou senha inválidos",
		CodeInvalidSignupData:     "Dados de cadastro inválidos",
		CodeUnauthenticated:       "Entre para continuar",
		CodeTicketTitleEmpty:      "O título é obrigatório",
		CodeTicketInvalidStatus:   "Status inválido: {{.Status}}",
		CodeTicketInvalidPriority: "Prioridade inválida: {{.Priority}}",
		CodeTicketInvalidID:       "ID de chamado inválido: {{.ID}}",
		CodeNotFound:              "O recurso solicitado não foi encontrado",
		CodeStorageCorrupt:        "Os dados armazenados não puderam ser lidos",
		CodeUnknown:               "Algo deu errado. Tente novamente.",
	},
}
