package locale

var english = map[string]string{
	"err:disabled":   "This command has been disabled on this server.",
	"err:permission": "You do not have permission to do that.",
	"err:notimezone": "You need to set your timezone before using the `at` option.",

	"sprint:err:alreadyexists":   "There is already a sprint running on this server.",
	"sprint:err:exclusive":       "You cannot specify both `in` and `at` at the same time.",
	"sprint:err:at":              "The `at` value must be a minute past the hour, between 0 and 60.",
	"sprint:err:noexists":        "There is no sprint running on this server.",
	"sprint:err:notjoined":       "You have not joined this sprint.",
	"sprint:err:notstarted":      "The sprint has not started yet.",
	"sprint:err:nonwordcount":    "You joined this sprint without a word count, so you cannot declare one.",
	"sprint:err:wclessthanstart": "Your declared total (%d) is less than your starting word count (%d).",
	"sprint:err:notalldeclared":  "Not everyone has declared their word count yet.",
	"sprint:err:cannotcancel":    "You cannot cancel this sprint.",
	"sprint:err:cannotend":       "You cannot end this sprint.",
	"sprint:err:wpm":             "That implies you wrote %d words at %.0f wpm, which is above your limit of %d. Raise your maxwpm setting if that is real.",

	"sprint:scheduled":          "A new sprint has been scheduled, starting in %d minute(s) and running for %d minute(s).",
	"sprint:begin":              "The sprint has started! Get writing. %s",
	"sprint:end":                "Time is up, pencils down! Declare your totals with the wc command. %s",
	"sprint:join":               "You have joined the sprint with %d starting words.",
	"sprint:join:update":        "Your starting word count was updated to %d.",
	"sprint:join:nowordcount":   "You have joined the sprint without a word count.",
	"sprint:leave":              "You have left the sprint.",
	"sprint:leave:cancelled":    "Everyone left the sprint, so it has been cancelled.",
	"sprint:cancelled":          "The sprint has been cancelled. Sorry %s",
	"sprint:declared":           "Your word count is %d (%d written this sprint).",
	"sprint:startsin":           "The sprint starts in %d minute(s) and %d second(s).",
	"sprint:timeleft":           "There are %d minute(s) and %d second(s) left in the sprint.",
	"sprint:waitingforwc":       "The sprint is over. We are waiting for final word counts.",
	"sprint:status":             "You are on %d words (%d written this sprint), %.1f minutes elapsed at %.0f wpm, %.1f minutes left.",
	"sprint:completed":          "The sprint is complete! Here are the results:",
	"sprint:leaderboard:entry":  "%d. %s - %d words (%.0f wpm)",
	"sprint:pb":                 "Your personal best is %d wpm.",
	"sprint:pb:new":             "New personal best: %d wpm!",
	"sprint:pb:none":            "You do not have a personal best yet.",
	"sprint:notified":           "You will be notified of new sprints on this server.",
	"sprint:forgot":             "You will no longer be notified of sprints on this server.",
	"sprint:purged":             "Purged %d user(s) from sprint notifications.",
	"sprint:purged:none":        "No users needed purging.",
	"sprint:project":            "You are sprinting in your project %s.",
	"project:err:noexists":      "You do not have a project with the shortname %s.",
	"project:err:exists":        "You already have a project with the shortname %s.",
	"project:created":           "Your project %s has been created.",
	"project:renamed":           "Your project is now called %s.",
	"project:completed":         "Congratulations on finishing %s!",
	"project:deleted":           "Your project %s has been deleted.",

	"setting:updated":     "Your %s setting has been updated.",
	"setting:err:invalid": "That is not a valid value for %s.",

	"guild:enabled":  "The %s command has been enabled on this server.",
	"guild:disabled": "The %s command has been disabled on this server.",
	"guild:language": "The server language is now %s.",

	"event:created":            "The event %s has been created.",
	"event:updated":            "The event %s has been updated.",
	"event:deleted":            "The event %s has been deleted.",
	"event:scheduled":          "The event %s is scheduled from %s to %s.",
	"event:begin":              "The event %s has started! Good luck everyone.",
	"event:ended":              "The event %s has ended. Congratulations to everyone who took part!",
	"event:err:noexists":       "There is no event on this server.",
	"event:err:exists":         "There is already an event on this server.",
	"event:err:notstarted":     "The event has not started yet.",
	"event:err:alreadystarted": "The event has already started.",
	"event:err:dates":          "The start must be in the future and before the end.",
	"event:wordsadded":         "Added %d words. Your total for %s is now %d.",
	"event:wordsset":           "Your total for %s is now %d.",
	"event:progress":           "You have written %d words towards %s.",
	"event:total":              "Together you have written %d words towards %s.",
	"event:leaderboard":        "%s - Leaderboard",
	"event:leaderboard:entry":  "%d. %s - %d words",

	"challenge:challenge":  "Write %d words in %d minutes (%d wpm)",
	"challenge:accepted":   "You have accepted the challenge:",
	"challenge:tocomplete": "Use the challenge complete command when you are done.",
	"challenge:completed":  "Challenge completed: %s  +%dxp",
	"challenge:givenup":    "You have given up on your challenge.",
	"challenge:noactive":   "You do not have an active challenge.",
}
