package viewer

// Role tells the surface how a segment should be styled.
type Role int

const (
	RoleText Role = iota
	RoleTitle
	RoleButton
	RoleFocusedButton
	RoleStatus
	RoleDim
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleText:
		return "text"
	case RoleTitle:
		return "title"
	case RoleButton:
		return "button"
	case RoleFocusedButton:
		return "focused_button"
	case RoleStatus:
		return "status"
	case RoleDim:
		return "dim"
	default:
		return "unknown"
	}
}

// Segment is a run of text drawn with one role.
type Segment struct {
	Text string
	Role Role
}

// Surface is what a view draws onto each frame. Rows are addressed from 0
// at the top. DrawRow replaces the whole row: segments are drawn left to
// right and the remainder of the row is blank. Text never contains control
// characters.
type Surface interface {
	Size() (width, height int)
	DrawRow(row int, segments ...Segment)
}
