/* models.go
 * This file contain the interfaces, structs and helper functions that are shared between sub packages
 */

package shared

type User struct {
	UserID   string
	Username string
}

// Entry is a user's bracket as stored. Picks holds the raw pick string, see logic.ParsePicks for the format.
type Entry struct {
	UserID   string
	Username string
	Picks    string
}
