package aboutus

// The about page renders three fixed sections.
const (
	SectionServices  = "services"
	SectionSpecialty = "specialty"
	SectionFun       = "fun"
)

var sections = []string{SectionServices, SectionSpecialty, SectionFun}

// Content holds every section list in display order.
type Content struct {
	Services  []string `json:"services"`
	Specialty []string `json:"specialty"`
	Fun       []string `json:"fun"`
}

type UpdateRequest struct {
	Services  []string `json:"services" binding:"required"`
	Specialty []string `json:"specialty" binding:"required"`
	Fun       []string `json:"fun" binding:"required"`
}
