package model

type CreateProjectRequest struct {
	Shortname string `json:"shortname"`
	Name      string `json:"name"`
}

type CreateProjectResponse struct {
	ID    int64  `json:"id"`
	Reply string `json:"reply"`
}

type ListProjectsRequest struct{}

type ProjectSummary struct {
	Shortname string `json:"shortname"`
	Name      string `json:"name"`
	Words     int    `json:"words"`
	Completed bool   `json:"completed"`
}

type ListProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type RenameProjectRequest struct {
	Shortname    string `json:"shortname"`
	NewShortname string `json:"new_shortname"`
	NewName      string `json:"new_name"`
}

type RenameProjectResponse struct {
	Reply string `json:"reply"`
}

type CompleteProjectRequest struct {
	Shortname string `json:"shortname"`
}

type CompleteProjectResponse struct {
	Reply string `json:"reply"`
}

type DeleteProjectRequest struct {
	Shortname string `json:"shortname"`
}

type DeleteProjectResponse struct {
	Reply string `json:"reply"`
}
