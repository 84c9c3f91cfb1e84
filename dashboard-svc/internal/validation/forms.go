package validation

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Language string `json:"language" validate:"omitempty,oneof=en ru uz"`
}

type RegisterForm struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	OrganizationName     string `json:"organization_name" validate:"required,max=255"`
	Language             string `json:"language" validate:"omitempty,oneof=en ru uz"`
}

type ChangePasswordForm struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type LanguageForm struct {
	Language string `json:"language" validate:"required,oneof=en ru uz"`
}

type SelectRestaurantForm struct {
	RestaurantID int `json:"restaurant_id" validate:"required,min=1"`
}

type OrganizationForm struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type InviteMemberForm struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=manager staff"`
}

type MemberRoleForm struct {
	Role string `json:"role" validate:"required,oneof=owner manager staff"`
}

type RestaurantForm struct {
	Name        string `json:"name" validate:"required,max=255"`
	Address     string `json:"address" validate:"required,max=500"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Description string `json:"description" validate:"max=2000"`
}

type WorkingHourForm struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time" validate:"required_if=IsClosed false,omitempty,clock"`
	CloseTime string `json:"close_time" validate:"required_if=IsClosed false,omitempty,clock"`
	IsClosed  bool   `json:"is_closed"`
}

type WorkingHoursForm struct {
	Hours []WorkingHourForm `json:"working_hours" validate:"required,min=1,max=7,dive"`
}

type TableForm struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=50"`
}

type CategoryForm struct {
	Name string `json:"name" validate:"required,max=100"`
}

type DishForm struct {
	CategoryID    int      `json:"category_id" validate:"required,min=1"`
	Name          string   `json:"name" validate:"required,max=255"`
	Description   string   `json:"description" validate:"max=2000"`
	Price         float64  `json:"price" validate:"gte=0"`
	Weight        float64  `json:"weight" validate:"gte=0"`
	Calories      float64  `json:"calories" validate:"gte=0"`
	Proteins      float64  `json:"proteins" validate:"gte=0"`
	Fats          float64  `json:"fats" validate:"gte=0"`
	Carbohydrates float64  `json:"carbohydrates" validate:"gte=0"`
	IsAvailable   *bool    `json:"is_available"`
	Ingredients   []string `json:"ingredients" validate:"max=50,dive,required,max=100"`
	Allergens     []string `json:"allergens" validate:"max=30,dive,required,max=100"`
}

type AvailabilityForm struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

type ReservationForm struct {
	TableID    int    `json:"table_id" validate:"required,min=1"`
	GuestName  string `json:"guest_name" validate:"required,max=255"`
	GuestPhone string `json:"guest_phone" validate:"required,phone"`
	GuestCount int    `json:"guest_count" validate:"required,min=1,max=50"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"omitempty,clock"`
	Comment    string `json:"comment" validate:"max=1000"`
}

type ReservationStatusForm struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type AvailabilityQuery struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Guests int    `json:"guests" validate:"required,min=1,max=50"`
}

type WeekQuery struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
}

type QuestionForm struct {
	ChatType string `json:"chat_type" validate:"required,oneof=menu reservation"`
	Text     string `json:"text" validate:"required,max=500"`
}

type ChatMessageForm struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// ReorderForm lists ids in their new order.
type ReorderForm struct {
	IDs []int `json:"ids" validate:"required,min=1,dive,min=1"`
}

type ExtensionRequestForm struct {
	RequestedDays int    `json:"requested_days" validate:"required,min=1,max=365"`
	Comment       string `json:"comment" validate:"max=1000"`
}

type SupportTicketForm struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ExtensionReviewForm struct {
	Status       string `json:"status" validate:"required,oneof=approved rejected completed"`
	AdminComment string `json:"admin_comment" validate:"max=1000"`
}

type TicketReplyForm struct {
	AdminReply string `json:"admin_reply" validate:"required,max=5000"`
	Status     string `json:"status" validate:"required,oneof=in_progress completed"`
}
