// internal/domain/user.go
package domain

// User is one entry of the system account database, reduced to the
// fields the login lookup needs.
type User struct {
	UID  uint32 `json:"uid"`
	Name string `json:"name"`
}
