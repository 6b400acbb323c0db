package types

type StarHistoryPoint struct {
	Date  string `json:"date"`
	Stars int    `json:"stars"`
}

type RepositoryStarData struct {
	RepoName    string             `json:"repo_name" db:"repo_name"`
	StarCount   int                `json:"star_count" db:"star_count"`
	StarHistory []StarHistoryPoint `json:"star_history" db:"-"`
	UpdatedAt   int64              `json:"updated_at,omitempty" db:"updated_at"`
}

type StarDataDocument struct {
	Projects []RepositoryStarData `json:"projects"`
}

func (d StarDataDocument) Find(repo string) *RepositoryStarData {
	for i := range d.Projects {
		if d.Projects[i].RepoName == repo {
			return &d.Projects[i]
		}
	}
	return nil
}

// StarWidget is what the star count and history widgets render.
type StarWidget struct {
	Repo      string             `json:"repo"`
	StarCount int                `json:"star_count"`
	History   []StarHistoryPoint `json:"history"`
	Error     string             `json:"error,omitempty"`
}
