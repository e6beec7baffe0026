package api

// Role identifies a user's position in the team hierarchy
type Role string

// User roles
const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

// Task statuses
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// InvitationStatus is the lifecycle state of an invitation
type InvitationStatus string

// Invitation statuses
const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// User is the identity record owned by the session.
// It is immutable on the client except by re-fetch.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
	InvitedBy int64  `json:"invitedBy,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Task is a remote-owned task record
type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	AssignedBy     int64      `json:"assignedBy"`
	AssignedByName string     `json:"assignedByName,omitempty"`
	AssignedTo     int64      `json:"assignedTo"`
	AssignedToName string     `json:"assignedToName,omitempty"`
	Status         TaskStatus `json:"status"`
	DueDate        string     `json:"dueDate,omitempty"`
	CompletedAt    string     `json:"completedAt,omitempty"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

// TaskFilter narrows task listings
type TaskFilter struct {
	// AssignedTo filters by assignee user ID; zero means no filter
	AssignedTo int64

	// Status filters by task status; empty means no filter
	Status TaskStatus
}

// CreateTaskInput is the payload for creating a task
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  int64  `json:"assignedTo"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UpdateTaskInput is a partial task update; nil fields are left unchanged
type UpdateTaskInput struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	AssignedTo  *int64      `json:"assignedTo,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	DueDate     *string     `json:"dueDate,omitempty"`
}

// TeamMember is a member record as served by the team endpoints
type TeamMember struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Role           Role   `json:"role"`
	JoinDate       string `json:"joinDate"`
	TasksCompleted int    `json:"tasksCompleted"`
	TasksTotal     int    `json:"tasksTotal"`
}

// HierarchyNode is a team member with their direct reports
type HierarchyNode struct {
	TeamMember
	Reports []HierarchyNode `json:"reports,omitempty"`
}

// TeamStats summarizes team activity
type TeamStats struct {
	TotalMembers   int        `json:"totalMembers"`
	ActiveMembers  int        `json:"activeMembers"`
	TotalTasks     int        `json:"totalTasks"`
	CompletedTasks int        `json:"completedTasks"`
	CompletionRate float64    `json:"completionRate"`
	RecentActivity []Activity `json:"recentActivity"`
}

// Activity is a single entry in the team activity feed
type Activity struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// Invitation is a remote-owned invitation record
type Invitation struct {
	ID             int64            `json:"id"`
	RecipientPhone string           `json:"recipientPhone"`
	RecipientEmail string           `json:"recipientEmail,omitempty"`
	RecipientName  string           `json:"recipientName,omitempty"`
	Status         InvitationStatus `json:"status"`
	InviteLink     string           `json:"inviteLink"`
	SentAt         string           `json:"sentAt"`
	RespondedAt    string           `json:"respondedAt,omitempty"`
}

// CreateInvitationInput is the payload for sending an invitation
type CreateInvitationInput struct {
	RecipientPhone string `json:"recipientPhone"`
	RecipientName  string `json:"recipientName,omitempty"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
}
