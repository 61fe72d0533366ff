package request

// RequestCodeRequest asks for a code to be mailed. Resource is required for downloads.
type RequestCodeRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Kind     string `json:"kind" binding:"required,oneof=download call"`
	Resource string `json:"resource" binding:"required_if=Kind download,max=128"`
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

// GiftCodeRequest is the admin variant; the code is returned instead of mailed
// unless Notify is set.
type GiftCodeRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Kind     string `json:"kind" binding:"required,oneof=download call"`
	Resource string `json:"resource" binding:"required_if=Kind download,max=128"`
	Notify   bool   `json:"notify"`
}
