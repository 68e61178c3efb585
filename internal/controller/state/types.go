package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния регистрации студента на курс
	StateRegisterName  UserState = "register_name"
	StateRegisterPhone UserState = "register_phone"
	StateRegisterOTP   UserState = "register_otp"

	// Состояния анкеты студента (после первой заявки)
	StateProfileGender         UserState = "profile_gender"
	StateProfileAge            UserState = "profile_age"
	StateProfileResidence      UserState = "profile_residence"
	StateProfileEducation      UserState = "profile_education"
	StateProfileSpecialization UserState = "profile_specialization"

	// Состояния создания курса (администратор)
	StateCourseName        UserState = "course_name"
	StateCourseDescription UserState = "course_description"
	StateCourseInstructor  UserState = "course_instructor"
	StateCourseStartDate   UserState = "course_start_date"
	StateCourseEndDate     UserState = "course_end_date"
	StateCoursePrice       UserState = "course_price"
	StateCourseMaxStudents UserState = "course_max_students"

	// Состояния создания поста (администратор)
	StatePostContent  UserState = "post_content"
	StatePostImageURL UserState = "post_image_url"
	StatePostSchedule UserState = "post_schedule"

	// Прочие админские состояния
	StateBroadcastText UserState = "broadcast_text"
	StatePaymentAmount UserState = "payment_amount"
	StateRejectReason  UserState = "reject_reason"
	StateUploadFile    UserState = "upload_file"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]string
}
