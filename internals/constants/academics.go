package constants

// Grades are stored as text to match student records and class groupings.
var Grades = []string{"8", "9", "10", "11", "12"}

func IsValidGrade(g string) bool {
	for _, v := range Grades {
		if v == g {
			return true
		}
	}
	return false
}

// Subjects offered across the supported curriculum.
var Subjects = []string{
	"Mathematics", "English", "Afrikaans", "IsiZulu", "Physical Science",
	"Life Sciences", "Geography", "History", "Accounting", "Business Studies",
	"Economics", "Life Orientation", "Computer Science", "Technology",
}

var Provinces = []string{
	"Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal", "Limpopo",
	"Mpumalanga", "North West", "Northern Cape", "Western Cape",
}

func IsValidProvince(p string) bool {
	for _, v := range Provinces {
		if v == p {
			return true
		}
	}
	return false
}

var AssessmentTypes = []string{"Test", "Exam", "Assignment", "Practical", "Project"}

var SubscriptionPlans = []string{"trial", "basic", "premium"}

const (
	TermMin = 1
	TermMax = 4
)
