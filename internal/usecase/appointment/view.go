package appointment

import "github.com/BruksfildServices01/careflow-api/internal/models"

// View is an appointment joined with its comments.
type View struct {
	models.Appointment
	Comments []models.Comment `json:"comments"`
}

func newView(ap models.Appointment, comments []models.Comment) View {
	if comments == nil {
		comments = []models.Comment{}
	}
	return View{Appointment: ap, Comments: comments}
}
