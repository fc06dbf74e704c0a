package clause

import "github.com/nurpe/freelance-shield/internal/model"

// rateToken is replaced with the formatted overtime rate in every slot.
const rateToken = "{rate}"

type override map[model.ClauseSlot]string

var defaults = override{
	model.SlotAcceptance: "ACCEPTANCE & REVISIONS: Deliverables are deemed accepted if the Client raises no written " +
		"objection within 7 days of delivery. The Fee includes up to 2 rounds of revisions; extra changes are billed at " +
		rateToken + "/hr.",
	model.SlotWarranty: "WARRANTY: The Provider will perform the Services with reasonable skill and care. Except as " +
		"stated in this Agreement, no other warranty is given, express or implied.",
	model.SlotIPRights: "INTELLECTUAL PROPERTY: All intellectual property in the deliverables remains with the Provider " +
		"until the Total Fee is paid in full, after which ownership transfers to the Client. The Provider may show the " +
		"work in its portfolio unless the Client objects in writing.",
	model.SlotCancellation: "CANCELLATION: Either party may cancel this Agreement by written notice. On cancellation " +
		"by the Client, the Provider retains the advance and is paid for work completed up to the date of notice.",
	model.SlotTermination: "COMMUNICATION & ANTI-GHOSTING: If the Client does not respond to the Provider's written " +
		"communication for 14 consecutive days, the Provider may terminate this Agreement by notice, retain the advance " +
		"and invoice for all work completed.",
	model.SlotLiability: "LIMITATION OF LIABILITY: The Provider's total liability under this Agreement shall not " +
		"exceed the Total Fee. Neither party is liable for indirect or consequential loss.",
}

var technical = override{
	model.SlotWarranty: "WARRANTY & BUG FIXES: The Provider will fix, free of charge, any bug reported in writing " +
		"within 30 days of delivery that makes the deliverables depart from the agreed scope. New features, failures of " +
		"third-party plugins or hosting, and changes made by others are outside this warranty and are billed at " +
		rateToken + "/hr.",
	model.SlotIPRights: "SOURCE CODE OWNERSHIP: Ownership of the source code, databases and build files transfers to " +
		"the Client only after the Total Fee is paid in full. Until then the Client holds a revocable licence to use " +
		"the deliverables for testing. Pre-existing libraries, frameworks and reusable components of the Provider " +
		"remain the Provider's property and are licensed to the Client on a non-exclusive, perpetual basis.",
}

var creative = override{
	model.SlotAcceptance: "ACCEPTANCE & REVISIONS: The Fee includes 2 rounds of revisions on the approved concept. " +
		"Rejection of a completed deliverable on purely subjective grounds after concept approval is treated as a new " +
		"brief and billed at " + rateToken + "/hr.",
	model.SlotIPRights: "INTELLECTUAL PROPERTY & SOURCE FILES: On full payment the Client owns the final exported " +
		"deliverables. Raw and working source files (layered design files, project timelines, RAW images and footage) " +
		"remain the Provider's property and are not handed over unless purchased separately.",
}

var marketing = override{
	model.SlotWarranty: "NO GUARANTEE OF RESULTS: The Provider will follow accepted industry practice but does not " +
		"guarantee any specific ranking, reach, engagement, traffic, leads, sales or return on investment. Platform " +
		"algorithm and policy changes are outside the Provider's control.",
	model.SlotAcceptance: "APPROVALS: Content calendars and creatives shared for approval are deemed approved if the " +
		"Client does not respond within 48 hours. Late approvals move the publishing schedule accordingly. Additional " +
		"content is billed at " + rateToken + "/hr.",
}

var writing = override{
	model.SlotWarranty: "ORIGINALITY & ACCURACY: The Provider warrants that the written work is original and not " +
		"plagiarised and, for translations, a faithful rendering of the source text. Facts, figures and claims supplied " +
		"by the Client remain the Client's responsibility.",
	model.SlotAcceptance: "REVIEW WINDOW: The Client shall review each draft within 5 working days of delivery. Drafts " +
		"not commented on within that window are deemed accepted. One round of edits is included; further rewrites are " +
		"billed at " + rateToken + "/hr.",
}

var translation = merge(writing, override{
	model.SlotCancellation: "CANCELLATION & KILL FEE: If the Client cancels after work has started, a kill fee is " +
		"payable: 25% of the Total Fee before a quarter of the text is translated, 50% before the first draft is " +
		"delivered and 100% once the draft has been delivered.",
})

var voiceOver = override{
	model.SlotAcceptance: "CORRECTIONS: The Fee includes one round of corrections for errors in pronunciation or " +
		"script adherence. Script changes after recording, or a different tone or style, need a new session billed at " +
		rateToken + "/hr.",
	model.SlotCancellation: "CANCELLATION & KILL FEE: A session cancelled with less than 24 hours' notice attracts a " +
		"kill fee of 50% of the session fee. Cancellation after recording is complete attracts 100% of the Total Fee.",
}

var overrides = map[model.IndustryCategory]override{
	model.CategoryWebDevelopment:       technical,
	model.CategoryAppDevelopment:       technical,
	model.CategoryGraphicDesign:        creative,
	model.CategoryVideoEditing:         creative,
	model.CategoryUIUXDesign:           creative,
	model.CategoryPhotography:          creative,
	model.CategorySocialMediaMarketing: marketing,
	model.CategorySEO:                  marketing,
	model.CategoryContentWriting:       writing,
	model.CategoryTranslation:          translation,
	model.CategoryVoiceOver:            voiceOver,
}

func merge(base, extra override) override {
	out := make(override, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
