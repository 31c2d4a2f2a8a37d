package constants

// Category tags a task can carry.
const (
	TagDailyRoutine = "Daily Routine"
	TagStudyRoutine = "Study Routine"
	TagFitness      = "Fitness"
	TagWork         = "Work"
	TagHobby        = "Hobby"
)

// Tags lists the selectable tags in display order.
var Tags = []string{TagDailyRoutine, TagStudyRoutine, TagFitness, TagWork, TagHobby}

// CardColors is the palette offered for a task card.
var CardColors = []string{
	"#ADF7B6",
	"#A817C0",
	"#FFC09F",
	"#8FFFF8",
	"#CC2222",
	"#FBF1BA",
	"#7075E5",
	"#FF36F7",
}

const DefaultCardColor = "#ADF7B6"

// User-facing messages shared by the CLI and the TUI.
const (
	MsgEmptyDay       = "No tasks for this day"
	MsgLoading        = "Loading tasks..."
	MsgLoadFailed     = "Failed to load tasks. Check your connection."
	MsgOffline        = "No connection to the server. Check your internet connection."
	MsgResetSent      = "Reset instructions have been sent to your email"
	MsgSignedOut      = "Signed out"
	MsgNotSignedIn    = "Not signed in. Run 'habithub signin' first."
	MsgServerError    = "Server error. Please try again later"
	MsgBadCredentials = "Invalid email or password"
	MsgEmailExists    = "Email already exists"
	MsgEmailNotFound  = "Email not found"
)
