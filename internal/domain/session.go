package domain

// Session is the locally persisted login state: the bearer token plus the
// optional remembered credentials. The password is only ever stored in its
// RSA-encrypted form.
type Session struct {
	Token             string
	Username          string
	EncryptedPassword string
	RememberMe        bool
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// RememberedLogin is the subset of Session used to prefill the login prompt.
type RememberedLogin struct {
	Username          string
	EncryptedPassword string
	RememberMe        bool
}

// UserInfo is the profile returned by GET /getInfo.
type UserInfo struct {
	UserID      int64    `json:"userId"`
	UserName    string   `json:"userName"`
	NickName    string   `json:"nickName"`
	DeptID      int64    `json:"deptId"`
	DeptName    string   `json:"deptName"`
	Roles       []string `json:"-"`
	Permissions []string `json:"-"`
}

// DefaultRole is assigned when the backend returns no roles.
const DefaultRole = "ROLE_DEFAULT"
