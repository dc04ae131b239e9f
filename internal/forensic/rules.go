package forensic

import (
	"fmt"
	"strings"
	"time"
)

// ruleFn evaluates one statutory rule over a date-sorted timeline. The bool
// is false when the rule's required events are absent.
type ruleFn func(events []Event, today time.Time) (Violation, bool)

// ruleTable fixes the evaluation (and output) order of the rules.
var ruleTable = []ruleFn{
	ruleRecordsDelivery,
	ruleSeriousEventDisclosure,
	ruleGoodFaithEstimate,
	ruleInformedConsent,
	ruleAppealWindow,
}

// ruleRecordsDelivery: providers must deliver medical records within 30 days
// of a written request (PA Act 169).
func ruleRecordsDelivery(events []Event, _ time.Time) (Violation, bool) {
	request, ok := firstOfType(events, EventTypeRequest)
	if !ok {
		return Violation{}, false
	}
	receipt, ok := firstOfType(events, EventTypeReceipt)
	if !ok {
		return Violation{}, false
	}

	days := daysBetween(request.Date, receipt.Date)
	v := Violation{
		ID:          "records-delivery-30d",
		Title:       "Medical Records Delivery Deadline",
		Statute:     "42 Pa. C.S. § 6152",
		IsTriggered: days > 30,
	}
	if v.IsTriggered {
		v.Severity = SeverityHigh
		v.Description = fmt.Sprintf("Records were delivered in %d days, exceeding the PA 30-day statutory limit.", days)
		v.Remedy = "Send a written demand citing 42 Pa. C.S. § 6152 and file a complaint with the PA Department of Health."
	} else {
		v.Severity = SeverityLow
		v.Description = fmt.Sprintf("Records were delivered within the legal 30-day window (%d days).", days)
	}
	return v, true
}

// ruleSeriousEventDisclosure: facilities must notify patients of a "serious
// event" in writing within 7 days of its discovery (MCARE).
func ruleSeriousEventDisclosure(events []Event, _ time.Time) (Violation, bool) {
	incident, ok := firstOfType(events, EventTypeFiling)
	if !ok {
		return Violation{}, false
	}

	var notice Event
	found := false
	for _, e := range events {
		if e.Type == EventTypeReceipt && strings.Contains(strings.ToLower(e.Label), "notice") {
			notice = e
			found = true
			break
		}
	}
	if !found {
		return Violation{}, false
	}

	days := daysBetween(incident.Date, notice.Date)
	v := Violation{
		ID:          "serious-event-disclosure-7d",
		Title:       "Serious Event Disclosure Deadline",
		Statute:     "40 P.S. § 1303.308 (MCARE)",
		IsTriggered: days > 7,
	}
	if v.IsTriggered {
		v.Severity = SeverityHigh
		v.Description = fmt.Sprintf("Written notice arrived %d days after the incident, exceeding the MCARE 7-day disclosure requirement.", days)
		v.Remedy = "Request the facility's serious-event disclosure record and report the lapse to the Patient Safety Authority."
	} else {
		v.Severity = SeverityLow
		v.Description = fmt.Sprintf("Written notice arrived within the MCARE 7-day disclosure window (%d days).", days)
	}
	return v, true
}

// ruleGoodFaithEstimate: self-pay patients are entitled to a Good Faith
// Estimate within 3 business-equivalent days of requesting one.
func ruleGoodFaithEstimate(events []Event, _ time.Time) (Violation, bool) {
	requested, ok := firstLabelContains(events, "estimate request")
	if !ok {
		return Violation{}, false
	}
	received, ok := firstLabelContains(events, "estimate received")
	if !ok {
		return Violation{}, false
	}

	days := daysBetween(requested.Date, received.Date)
	v := Violation{
		ID:          "good-faith-estimate-3d",
		Title:       "Good Faith Estimate Deadline",
		Statute:     "Act 97 of 2020 / 45 C.F.R. § 149.610",
		IsTriggered: days > 3,
	}
	if v.IsTriggered {
		v.Severity = SeverityMedium
		v.Description = fmt.Sprintf("The Good Faith Estimate took %d days to arrive, exceeding the 3-day requirement.", days)
		v.Remedy = "Dispute any excess charges in writing and request a corrected Good Faith Estimate."
	} else {
		v.Severity = SeverityLow
		v.Description = fmt.Sprintf("The Good Faith Estimate arrived within the 3-day window (%d days).", days)
	}
	return v, true
}

// ruleInformedConsent: a surgery or procedure with records on hand but no
// consent documentation in the records received. Only receipt events count
// as evidence: a consent mention elsewhere in the timeline (a discharge
// note, a filing label) is not documentation in hand.
func ruleInformedConsent(events []Event, _ time.Time) (Violation, bool) {
	if _, ok := firstLabelContains(events, "surgery", "procedure"); !ok {
		return Violation{}, false
	}
	if _, ok := firstOfType(events, EventTypeReceipt); !ok {
		return Violation{}, false
	}

	missing := true
	for _, e := range events {
		if e.Type == EventTypeReceipt && mentions(e, "consent", "signed") {
			missing = false
			break
		}
	}
	v := Violation{
		ID:          "informed-consent-missing",
		Title:       "Informed Consent Documentation",
		Statute:     "40 P.S. § 1303.504 (MCARE)",
		IsTriggered: missing,
	}
	if missing {
		v.Severity = SeverityMedium
		v.Description = "A surgery or procedure appears in the timeline but no consent form or signed acknowledgment is documented in the records received."
		v.Remedy = "Demand the signed informed-consent forms from the facility; their absence supports a consent-based claim."
	} else {
		v.Severity = SeverityLow
		v.Description = "Informed consent documentation is present in the records received."
	}
	return v, true
}

// appealWindowDays is the DOH complaint/appeal filing window after a denial.
const appealWindowDays = 60

// ruleAppealWindow: a coverage denial can be appealed to the PA Department
// of Health within 60 days. An expired window is the violation; an open one
// is reported as actionable, not triggered.
func ruleAppealWindow(events []Event, today time.Time) (Violation, bool) {
	denial, ok := firstLabelContains(events, "denial", "denied")
	if !ok {
		return Violation{}, false
	}

	deadline := denial.Date.AddDate(0, 0, appealWindowDays)
	elapsed := daysBetween(denial.Date, today)
	expired := elapsed > appealWindowDays

	v := Violation{
		ID:      "doh-appeal-60d",
		Title:   "DOH Appeal Window",
		Statute: "28 Pa. Code § 9.702",
	}
	if expired {
		v.Severity = SeverityHigh
		v.IsTriggered = true
		v.Description = fmt.Sprintf("The 60-day window to appeal this denial closed on %s (%d days have elapsed).", deadline.Format("2006-01-02"), elapsed)
	} else {
		v.Severity = SeverityMedium
		v.IsTriggered = false
		v.IsActionable = true
		v.Description = fmt.Sprintf("%d days remain to appeal this denial; the window closes on %s.", appealWindowDays-elapsed, deadline.Format("2006-01-02"))
		v.Remedy = "File an appeal with the Pennsylvania Department of Health before the deadline."
	}
	return v, true
}
