package models

type Platform string

const (
	PlatformCodeforces    Platform = "codeforces"
	PlatformLeetCode      Platform = "leetcode"
	PlatformCodeChef      Platform = "codechef"
	PlatformGeeksforGeeks Platform = "geeksforgeeks"
)

// AllPlatforms fixes the order platforms are refreshed and reported in.
var AllPlatforms = []Platform{
	PlatformCodeforces,
	PlatformLeetCode,
	PlatformCodeChef,
	PlatformGeeksforGeeks,
}

// PlatformData is the normalized shape every adapter produces. Adapters fill
// only the fields their upstream exposes: CodeChef has no submission list,
// GeeksforGeeks only reports an aggregate solved count.
type PlatformData struct {
	Submissions []Submission
	Ratings     []Rating
	TotalSolved int
}
