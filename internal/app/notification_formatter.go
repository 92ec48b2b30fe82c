package app

import (
	"fmt"
	"net/url"
	"strings"

	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/student"
)

const (
	DefaultMessagingBaseURL = "https://wa.me"
	DefaultCountryCode      = "20"
)

// MessageContext carries what the absence notice needs besides the student.
type MessageContext struct {
	GroupName  string
	Date       calendar.Date
	CenterName string
}

// Payload is a ready-to-send absence notice. Nothing is delivered here.
type Payload struct {
	StudentID   string
	StudentName string
	Phone       string // normalized, digits only, with country code
	Message     string
	Link        string
}

type NotificationFormatter struct {
	baseURL     string
	countryCode string
}

func NewNotificationFormatter(baseURL, countryCode string) *NotificationFormatter {
	if baseURL == "" {
		baseURL = DefaultMessagingBaseURL
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &NotificationFormatter{
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: countryCode,
	}
}

// NormalizePhone strips everything but digits and puts the number in
// international form: a leading trunk "0" becomes the country code,
// a "00" international prefix is dropped, and bare local numbers get
// the country code prepended.
func (f *NotificationFormatter) NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "00"):
		return digits[2:]
	case strings.HasPrefix(digits, "0"):
		return f.countryCode + digits[1:]
	case strings.HasPrefix(digits, f.countryCode):
		return digits
	default:
		return f.countryCode + digits
	}
}

// DeepLink builds the messaging URL that opens a chat with phone prefilled with message.
func (f *NotificationFormatter) DeepLink(normalizedPhone, message string) string {
	// QueryEscape writes spaces as '+', which some clients show literally.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("%s/%s?text=%s", f.baseURL, normalizedPhone, text)
}

func (f *NotificationFormatter) RenderAbsenceMessage(studentName string, mc MessageContext) string {
	var b strings.Builder
	b.WriteString("⚠️ *إشعار غياب*\n\n")
	b.WriteString(fmt.Sprintf("👤 *اسم الطالب:* %s\n", studentName))
	b.WriteString(fmt.Sprintf("👥 *المجموعة:* %s\n", orUnspecified(mc.GroupName)))
	b.WriteString(fmt.Sprintf("📅 *التاريخ:* %s\n\n", mc.Date.String()))
	b.WriteString("نرجو متابعة الطالب والتواصل معنا عند الحاجة 🙏")
	if mc.CenterName != "" {
		b.WriteString("\n")
		b.WriteString(mc.CenterName)
	}
	return b.String()
}

// FormatNotifications renders one payload per absent student. Students with
// no usable contact number are left out; the rest of the batch is unaffected.
func (f *NotificationFormatter) FormatNotifications(absent []*student.Student, mc MessageContext) []Payload {
	payloads := make([]Payload, 0, len(absent))
	for _, st := range absent {
		if st == nil {
			continue
		}
		phone := f.NormalizePhone(st.ContactPhone())
		if phone == "" {
			continue
		}
		message := f.RenderAbsenceMessage(st.Name, mc)
		payloads = append(payloads, Payload{
			StudentID:   st.ID,
			StudentName: st.Name,
			Phone:       phone,
			Message:     message,
			Link:        f.DeepLink(phone, message),
		})
	}
	return payloads
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "غير محدد"
	}
	return s
}
