package api

import "time"

// Role is a user's position in the review pipeline.
type Role string

const (
	RoleEmployee    Role = "EMPLOYEE"
	RoleCoordinator Role = "COORDINATOR"
	RoleCommittee   Role = "COMMITTEE"
	RoleAdmin       Role = "ADMIN"
)

// Status is a nomination's place in the approval lifecycle. Transitions are
// computed by the backend; the client only requests them and displays the
// result.
type Status string

const (
	StatusSubmitted           Status = "NOMINATION_SUBMITTED"
	StatusCoordinatorApproved Status = "COORDINATOR_APPROVED"
	StatusCoordinatorRejected Status = "COORDINATOR_REJECTED"
	StatusCommitteeApproved   Status = "COMMITTEE_APPROVED"
	StatusCommitteeRejected   Status = "COMMITTEE_REJECTED"
	StatusAwarded             Status = "AWARDED"
)

// Label renders a status the way the review dashboards present it. Older
// backend payloads spell the submitted state "PENDING"; both forms map to
// the same label.
func (s Status) Label() string {
	switch s {
	case StatusSubmitted, "PENDING":
		return "Pending"
	case StatusCoordinatorApproved:
		return "Shortlisted"
	case StatusCoordinatorRejected, StatusCommitteeRejected:
		return "Rejected"
	case StatusCommitteeApproved:
		return "Finalist"
	case StatusAwarded:
		return "Winner"
	default:
		return string(s)
	}
}

// Credentials is the login request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token pair issued on successful login.
type LoginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// Registration is the account creation payload.
type Registration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmployeeID   string `json:"employee_id"`
	EmployeeDept string `json:"employee_dept,omitempty"`
	EmployeeRole string `json:"employee_role,omitempty"`
}

// User is the full profile record served by the profile endpoint.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	EmployeeID   string `json:"employee_id"`
	EmployeeDept string `json:"employee_dept"`
	EmployeeRole string `json:"employee_role"`
	ManagerName  string `json:"manager_name,omitempty"`
	Location     string `json:"location"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
type ProfileUpdate struct {
	Location string `json:"location,omitempty"`
}

// Promotion changes another user's role.
type Promotion struct {
	UserIDToPromote int  `json:"user_id_to_promote"`
	NewRole         Role `json:"new_role"`
}

// Employee is a nominee-browse entry.
type Employee struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	EmployeeID   string `json:"employee_id"`
	EmployeeDept string `json:"employee_dept"`
	EmployeeRole string `json:"employee_role"`
	Role         Role   `json:"role"`
	Location     string `json:"location"`
}

// EmployeePage is one server-side page of the nominee browse list.
type EmployeePage struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []Employee `json:"results"`
}

// BrowseFilter holds the nominee-browse query parameters. Empty fields are
// omitted from the query string; Page always goes out (default 1).
type BrowseFilter struct {
	Page     int
	Search   string
	Dept     string
	Role     string
	Location string
}

// FilterOption is one distinct dept/role/location combination used to
// populate the browse filter dropdowns.
type FilterOption struct {
	EmployeeDept string `json:"employee_dept"`
	EmployeeRole string `json:"employee_role"`
	Location     string `json:"location"`
}

// Metric is one selected evaluation metric within a category.
type Metric struct {
	Category string `json:"category"`
	Metric   string `json:"metric"`
}

// Criteria maps evaluation categories to their available metrics.
type Criteria map[string][]string

// NominationRequest submits or updates the caller's own nomination.
type NominationRequest struct {
	Nominee         int      `json:"nominee"`
	Reason          string   `json:"reason"`
	SelectedMetrics []Metric `json:"selected_metrics"`
}

// NominationStatus reports the caller's own nomination state plus how many
// nominations they have received.
type NominationStatus struct {
	HasNominated             bool       `json:"has_nominated"`
	Nominee                  *Employee  `json:"nominee"`
	NomineeName              string     `json:"nominee_name"`
	Reason                   string     `json:"reason"`
	NomineeID                int        `json:"nominee_id"`
	NominationDate           *time.Time `json:"nomination_date"`
	NominationsReceivedCount int        `json:"nominations_received_count"`
}

// Notification is a per-user message with a read flag.
type Notification struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
}

// ReviewFilter selects which slice of nominations a review listing returns.
type ReviewFilter string

const (
	FilterPending          ReviewFilter = "pending"
	FilterCommitteePending ReviewFilter = "committee_pending"
	FilterHistory          ReviewFilter = "history"
)

// Nomination is one entry of a reviewer-facing listing.
type Nomination struct {
	ID              int       `json:"id"`
	NomineeID       int       `json:"nominee_id"`
	NomineeName     string    `json:"nominee_name"`
	NomineeRole     string    `json:"nominee_role"`
	NomineeDept     string    `json:"nominee_dept"`
	NominatorName   string    `json:"nominator_name"`
	Reason          string    `json:"reason"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Status          Status    `json:"status"`
	Category        string    `json:"category"`
	SelectedMetrics []Metric  `json:"selected_metrics"`
}

// ReviewAction requests a status transition on a nomination.
type ReviewAction struct {
	NominationID int    `json:"nomination_id"`
	Action       string `json:"action"` // APPROVE, REJECT or UNDO
}

// Finalist is a nomination eligible for company-wide voting.
type Finalist struct {
	ID            int    `json:"id"`
	NomineeName   string `json:"nominee_name"`
	NomineeDept   string `json:"nominee_dept"`
	NomineeRole   string `json:"nominee_role"`
	NominatorName string `json:"nominator_name"`
	Reason        string `json:"reason"`
}

// VotingState is the finalist list plus whether the caller already voted.
type VotingState struct {
	HasVoted  bool       `json:"has_voted"`
	Finalists []Finalist `json:"finalists"`
}

// VoteResult is one finalist's tally on the results view.
type VoteResult struct {
	ID           int    `json:"id"`
	NomineeName  string `json:"nominee_name"`
	EmployeeID   string `json:"employee_id"`
	EmployeeRole string `json:"employee_role"`
	EmployeeDept string `json:"employee_dept"`
	Reason       string `json:"reason"`
	Status       Status `json:"status"`
	VoteCount    int    `json:"vote_count"`
}

// Timeline is the four-phase award schedule. Instants travel as the
// backend's datetime strings; the client edits and displays them without
// enforcing anything.
type Timeline struct {
	NominationStart  string `json:"nomination_start"`
	NominationEnd    string `json:"nomination_end"`
	CoordinatorStart string `json:"coordinator_start"`
	CoordinatorEnd   string `json:"coordinator_end"`
	CommitteeStart   string `json:"committee_start"`
	CommitteeEnd     string `json:"committee_end"`
	VotingStart      string `json:"voting_start"`
	VotingEnd        string `json:"voting_end"`
}

// Winner is one awarded employee in the winners summary.
type Winner struct {
	Username     string `json:"username"`
	EmployeeID   string `json:"employee_id"`
	EmployeeRole string `json:"employee_role"`
	EmployeeDept string `json:"employee_dept"`
}

// Winners groups award outcomes by the stage that produced them.
type Winners struct {
	FinalWinners       []Winner `json:"final_winners"`
	CommitteeWinners   []Winner `json:"committee_winners"`
	CoordinatorWinners []Winner `json:"coordinator_winners"`
}

// AnalyticsSummary is the KPI block of the admin dashboard.
type AnalyticsSummary struct {
	TotalNominations      int `json:"total_nominations"`
	CoordinatorApproved   int `json:"coordinator_approved"`
	CommitteeFinalists    int `json:"committee_finalists"`
	FinalWinner           int `json:"final_winner"`
	TotalRejections       int `json:"total_rejections"`
	EmployeesNotNominated int `json:"employees_not_nominated"`
}

// DeptStat is a per-department nomination count.
type DeptStat struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// TrendPoint is a per-day nomination count.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthPoint is a per-month nomination count.
type MonthPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Analytics is the admin analytics payload.
type Analytics struct {
	Summary         AnalyticsSummary `json:"summary"`
	DepartmentStats []DeptStat       `json:"department_stats"`
	DailyTrend      []TrendPoint     `json:"daily_trend"`
	TrendData       []MonthPoint     `json:"trend_data"`
}

// Insight is one AI-summarized candidate from the analysis endpoint.
type Insight struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Votes     int    `json:"votes"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	Status    string `json:"status"`
}

// EmployeeUpsert creates or updates a single employee record by hand.
type EmployeeUpsert struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
}

// Export is a binary spreadsheet download.
type Export struct {
	Filename string
	Data     []byte
}
