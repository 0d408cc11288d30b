package domain

// Post is the editable content generated for one platform.
// Title is only meaningful when Platform.SupportsTitle() is true.
type Post struct {
	Platform Platform `json:"platform"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// PostEdit replaces a post's content and hashtags. A nil or empty Title keeps
// the existing one.
type PostEdit struct {
	Title    *string
	Content  string
	Hashtags []string
}

var defaultHashtags = []string{
	"#VIAImmersive",
	"#FutureBuilders",
	"#BuiltWithVIA",
	"#ETHGlobal",
	"#Devconnect2025",
}

// DefaultPost returns the built-in placeholder post for p.
// Hashtags are always seeded from these defaults, never from the stored record.
func DefaultPost(p Platform) Post {
	post := Post{Platform: p, Hashtags: append([]string(nil), defaultHashtags...)}
	switch p {
	case PlatformLinkedIn:
		post.Title = "VIA 2025 Tech Immersive Launch - Partnership Opportunity"
		post.Content = "🔷 Join VIA in empowering underrepresented students to become global tech leaders " +
			"through immersive experiences! Our 2025 Tech Immersive Launch is coming up. Interested in " +
			"partnering with us to make a difference? Let's connect! ➡️ 🔹 Explore more: " +
			"https://drive.google.com/via_tech_immersive_launch 🔹 Reach out to collaborate!"
	default:
		post.Content = "🌟 Exciting news! VIA is gearing up for the 2025 Tech Immersive Launch 🚀 " +
			"Are you ready to join the future builders? Let's do this together! 🔧🔥 🔹 Learn more: " +
			"https://drive.google.com/via_tech_immersive_launch 🔹 Tag a friend who needs to know!"
	}
	return post
}

// DefaultPlatform is used by the results view when no selection was stored.
const DefaultPlatform = PlatformInstagram
