package handlers

const (
	ErrInvalidFormData     = "Invalid form data"
	ErrInternalServerError = "Internal server error"
)

// Flash messages shown after a redirect
const (
	FlashUsernameTaken      = "Username already exists!"
	FlashRegistered         = "Registration successful! Please log in."
	FlashLoginSuccess       = "Login successful!"
	FlashInvalidCredentials = "Invalid credentials. Please try again."
	FlashInvalidFileType    = "Invalid file type. Please upload a .docx or .pdf file."
	FlashUnreadableFile     = "Could not read the uploaded file. Please upload a valid .docx or .pdf file."
	FlashFileTooLarge       = "The uploaded file is too large."
	FlashNoSkills           = "No relevant skills found in the resume."
	FlashLoggedOut          = "Logged out successfully."
)

const (
	resumeField = "resume"

	pathRegister = "/register"
	pathLogin    = "/login"
	pathUpload   = "/upload"
	pathQuiz     = "/mcq"
	pathScores   = "/scores"
)
