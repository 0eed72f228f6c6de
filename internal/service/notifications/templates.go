package notifications

import "text/template"

var confirmedTemplate = template.Must(template.New("confirmed").Parse(`Hi {{.Username}},

Your EV charging slot has been successfully reserved!

Station: {{.StationName}}
Slot Number: {{.SlotNumber}}
Start Time: {{.Start}}
End Time: {{.End}}

{{if .Matches}}You have opted for carpooling! Here are your carpool matches:
{{range .Matches}}- {{.}}
{{end}}{{else}}If you want to carpool, you can edit your reservation.
{{end}}
Thank you for using our service!

Regards,
EV Charging Team
`))

var cancelledTemplate = template.Must(template.New("cancelled").Parse(`Hi {{.Username}},

Your EV charging reservation has been canceled.

Station: {{.StationName}}
Slot Number: {{.SlotNumber}}

If this was a mistake, feel free to book again.

Regards,
EV Charging Team
`))

type emailData struct {
	Username    string
	StationName string
	SlotNumber  int
	Start       string
	End         string
	Matches     []string
}
