package catalog

import "github.com/lbreton/showcase/store"

// fieldReader decodes one record, remembering the first type mismatch so
// decode functions can read every column without checking errors one by
// one.
type fieldReader struct {
	table  string
	fields store.Fields
	err    error
}

func readRecord(table string, rec store.Record) *fieldReader {
	return &fieldReader{table: table, fields: rec.Fields}
}

func (r *fieldReader) str(key string) string {
	if r.err != nil {
		return ""
	}
	var v string
	v, r.err = r.fields.String(r.table, key)
	return v
}

func (r *fieldReader) strList(key string) []string {
	if r.err != nil {
		return nil
	}
	var v []string
	v, r.err = r.fields.StringList(r.table, key)
	return v
}

func (r *fieldReader) boolean(key string) bool {
	if r.err != nil {
		return false
	}
	var v bool
	v, r.err = r.fields.Bool(r.table, key)
	return v
}

func (r *fieldReader) integer(key string) int {
	if r.err != nil {
		return 0
	}
	var v int
	v, r.err = r.fields.Int(r.table, key)
	return v
}

func decodeProject(rec store.Record) (Project, error) {
	r := readRecord(ProjectsTable, rec)
	p := Project{
		ProjectID:    rec.ID,
		Name:         r.str("name"),
		Description:  r.str("description"),
		Technologies: r.strList("technologies"),
		ProjectLink:  r.str("projectLink"),
		SourceLink:   r.str("sourceLink"),
		DemoLink:     r.str("demoLink"),
		Images:       r.strList("images"),
		Thumbnail:    r.str("thumbnail"),
		Cohort:       r.str("cohort"),
		Students:     r.strList("students"),
		Category:     r.str("category"),
		Tags:         r.strList("tags"),
		Status:       r.str("status"),
		Difficulty:   r.str("difficulty"),
		StartDate:    r.str("startDate"),
		EndDate:      r.str("endDate"),
		Mentor:       r.str("mentor"),
		Achievements: r.str("achievements"),
		Author:       r.str("author"),
		Hidden:       r.boolean("isHidden"),
		Likes:        r.integer("likes"),
	}
	if r.err != nil {
		return Project{}, r.err
	}
	if p.Status == "" {
		p.Status = StatusInProgress
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyIntermediate
	}
	return p, nil
}

func decodeProjects(records []store.Record) ([]Project, error) {
	out := make([]Project, 0, len(records))
	for _, rec := range records {
		p, err := decodeProject(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func encodeProjectInput(in ProjectInput) store.Fields {
	return store.Fields{
		"name":         in.Name,
		"description":  in.Description,
		"technologies": in.Technologies,
		"projectLink":  in.ProjectLink,
		"sourceLink":   in.SourceLink,
		"demoLink":     in.DemoLink,
		"images":       in.Images,
		"thumbnail":    in.Thumbnail,
		"cohort":       in.Cohort,
		"students":     in.Students,
		"category":     in.Category,
		"tags":         in.Tags,
		"status":       in.Status,
		"difficulty":   in.Difficulty,
		"startDate":    in.StartDate,
		"endDate":      in.EndDate,
		"mentor":       in.Mentor,
		"achievements": in.Achievements,
		"isHidden":     in.Hidden,
	}
}

func encodeProjectPatch(p ProjectPatch) store.Fields {
	fields := store.Fields{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setList := func(key string, v *[]string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("name", p.Name)
	setString("description", p.Description)
	setList("technologies", p.Technologies)
	setString("projectLink", p.ProjectLink)
	setString("sourceLink", p.SourceLink)
	setString("demoLink", p.DemoLink)
	setList("images", p.Images)
	setString("thumbnail", p.Thumbnail)
	setString("cohort", p.Cohort)
	setList("students", p.Students)
	setString("category", p.Category)
	setList("tags", p.Tags)
	setString("status", p.Status)
	setString("difficulty", p.Difficulty)
	setString("startDate", p.StartDate)
	setString("endDate", p.EndDate)
	setString("mentor", p.Mentor)
	setString("achievements", p.Achievements)
	if p.Hidden != nil {
		fields["isHidden"] = *p.Hidden
	}
	return fields
}

func decodeComment(rec store.Record) (Comment, error) {
	r := readRecord(CommentsTable, rec)
	c := Comment{
		CommentID: rec.ID,
		ProjectID: r.str("projectID"),
		Content:   r.str("content"),
		Author:    r.str("author"),
		CreatedAt: r.str("createdAt"),
	}
	if r.err != nil {
		return Comment{}, r.err
	}
	return c, nil
}

func decodeUser(rec store.Record) (User, error) {
	r := readRecord(UsersTable, rec)
	u := User{
		UserID:       rec.ID,
		Username:     r.str("username"),
		PasswordHash: r.str("password"),
		Role:         r.str("role"),
	}
	if r.err != nil {
		return User{}, r.err
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u, nil
}
