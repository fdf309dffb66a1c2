package identity

type BindingResponse struct {
	ExternalID  string `json:"external_id"`
	EmployeeID  string `json:"employee_id"`
	DisplayName string `json:"display_name"`
	BoundAt     string `json:"bound_at"`
}

func ToResponse(b Binding) BindingResponse {
	return BindingResponse{
		ExternalID:  b.ExternalID,
		EmployeeID:  b.EmployeeID,
		DisplayName: b.DisplayName,
		BoundAt:     b.BoundAt.Format("2006-01-02 15:04:05"),
	}
}
