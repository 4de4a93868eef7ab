package domain

// User is a team member. Tasks and documents hold non-owning references to
// users by id; deleting a user prunes those references but never the
// referencing entities.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	// Password is the plaintext local credential. It is persisted only in the
	// separate credential directory key and stripped from API responses.
	Password string `json:"password,omitempty"`
}
