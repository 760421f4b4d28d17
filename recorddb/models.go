package recorddb

// Contact mirrors one row of the Contacts table
type Contact struct {
	ID        string // contact_id
	AuthID    string // auth_id
	Email     string // email
	FirstName string // first_name
	LastName  string // last_name
	AvatarURL string // avatar_url
	Bio       string // bio
	Major     string // major
	GradYear  int    // grad_year
	Onboarded bool   // onboarded
}

// Program mirrors one row of the Programs table
type Program struct {
	ID          string // program_id
	Name        string // name
	Description string // description
	Institution string // institution
	Active      bool   // active
}

// Cohort mirrors one row of the Cohorts table
type Cohort struct {
	ID        string // cohort_id
	ProgramID string // program_id
	Name      string // name
	ShortName string // short_name
	Status    string // status
	StartDate string // start_date
	EndDate   string // end_date
}

// Team mirrors one row of the Teams table
type Team struct {
	ID          string // team_id
	Name        string // name
	Description string // description
	ImageURL    string // image_url
}

// TeamMember mirrors one row of the roster link table
type TeamMember struct {
	TeamID    string // team_id
	ContactID string // contact_id
	Role      string // role
	Status    string // status
}

// Event mirrors one row of the Events table
type Event struct {
	ID              string // event_id
	Name            string // name
	Description     string // description
	Location        string // location
	StartDateTime   string // start_datetime
	EndDateTime     string // end_datetime
	RegistrationURL string // registration_url
	PointValue      int    // point_value
}

// Milestone mirrors one row of the Milestones table
type Milestone struct {
	ID          string // milestone_id
	CohortID    string // cohort_id
	Name        string // name
	Description string // description
	Number      int    // number
	DueDate     string // due_date
	PointValue  int    // point_value
}

// Submission mirrors one row of the Submissions table
type Submission struct {
	ID          string // submission_id
	TeamID      string // team_id
	MilestoneID string // milestone_id
	ContactID   string // contact_id
	Link        string // link
	Comments    string // comments
	CreatedTime string // created_time
}

// Reward mirrors one row of the Rewards table
type Reward struct {
	ID          string // reward_id
	Name        string // name
	Description string // description
	ImageURL    string // image_url
	Cost        int    // cost
	Available   bool   // available
	Inventory   int    // inventory
}

// PointTransaction mirrors one row of the points ledger
type PointTransaction struct {
	ID          string // transaction_id
	ContactID   string // contact_id
	TeamID      string // team_id
	RewardID    string // reward_id
	Amount      int    // amount
	Reason      string // reason
	CreatedTime string // created_time
}

// LeaderboardRow is one aggregated row of the cohort leaderboard
type LeaderboardRow struct {
	ContactID string
	FirstName string
	LastName  string
	TeamID    string
	TeamName  string
	Points    int
}
