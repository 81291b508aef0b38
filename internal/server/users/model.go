package users

// account is the sign-in record stored under auth:<phone>.
type account struct {
	UserID       string `json:"userId"`
	PasswordHash []byte `json:"passwordHash"`
}

// Profile keys the server manages itself.
const (
	fieldID               = "id"
	fieldName             = "name"
	fieldPhone            = "phone"
	fieldProfileCompleted = "profileCompleted"
	fieldCreatedAt        = "createdAt"
	fieldUpdatedAt        = "updatedAt"
)

func authKey(phone string) string   { return "auth:" + phone }
func userKey(id string) string      { return "user:" + id }
func favoritesKey(id string) string { return "favorites:" + id }
func viewedKey(id string) string    { return "viewed:" + id }
