package wiki

import "context"

// seedArticles is the initial statute library, inserted once into an empty
// store. Seed rows bypass the audit chain: they predate any user edit.
var seedArticles = []Article{
	{
		ID:               "pa-act-169",
		Title:            "Medical Records Access (Act 169)",
		Category:         CategoryAccess,
		Summary:          "Pennsylvania law regarding a patient's right to access and copy their medical records.",
		StatuteReference: "42 Pa. C.S. § 6152",
		LastUpdated:      "2024-01-15",
		AuthorObf:        "admin-001",
		Content: "### Overview\nUnder Pennsylvania law, healthcare providers must provide access to medical records within 30 days of a written request.\n" +
			"### Fees\nProviders may charge \"reasonable costs\" for copying. For 2024, these are capped at:\n- $1.81 per page for the first 20 pages.\n- $1.34 per page for pages 21-60.\n- $0.47 per page for pages 61+.\n" +
			"### Deadlines\nThe facility has **30 days** to respond to your request. If the records are off-site, they may take up to 60 days but must notify you in writing of the delay.",
	},
	{
		ID:               "mcare-act-13",
		Title:            "MCARE Act Notifications",
		Category:         CategoryQuality,
		Summary:          "The Medical Care Availability and Reduction of Error (MCARE) Act requirements for disclosure.",
		StatuteReference: "40 P.S. § 1303.308",
		LastUpdated:      "2023-11-20",
		AuthorObf:        "admin-001",
		Content: "### Duty to Report\nHealthcare workers are required to report \"serious events\" and \"incidents\" to the Patient Safety Authority.\n" +
			"### Disclosure to Patients\nMedical facilities must notify patients in writing if they were the subject of a \"serious event\" within **seven days** of its discovery.",
	},
	{
		ID:               "billing-surprises",
		Title:            "PA No Surprises Act",
		Category:         CategoryBilling,
		Summary:          "Protections against unexpected out-of-network medical bills.",
		StatuteReference: "Act 97 of 2020",
		LastUpdated:      "2024-02-10",
		AuthorObf:        "admin-001",
		Content: "### Your Rights\nIn Pennsylvania, you are protected from \"balance billing\" for emergency services and certain non-emergency services at in-network facilities.\n" +
			"### Good Faith Estimates\nUninsured or self-pay patients have the right to a \"Good Faith Estimate\" of expected charges before service is provided.",
	},
}

// EnsureSeed inserts the initial library if the store is empty. Idempotent;
// safe to call on every process start.
func (s *Service) EnsureSeed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, a := range seedArticles {
		if err := s.repo.Put(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
