package postgres

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	disputeDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dispute"
	irnteDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/irnte"
	sequenceDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/sequence"
)

func TestSequenceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SequenceRepository Suite")
}

var _ = Describe("SequenceRepository", func() {
	var (
		db   *gorm.DB
		repo *SequenceRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&sequenceDatamodel.TicketSequence{},
			&disputeDatamodel.PayDispute{},
			&irnteDatamodel.IRNTELog{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewSequenceRepository(db, nil)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NextValue", func() {
		It("should start a fresh counter at 1", func() {
			value, err := repo.NextValue(ctx, "PAY", 2025)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int64(1)))
		})

		It("should increment on every call", func() {
			for expected := int64(1); expected <= 5; expected++ {
				value, err := repo.NextValue(ctx, "PAY", 2025)
				Expect(err).NotTo(HaveOccurred())
				Expect(value).To(Equal(expected))
			}
		})

		It("should keep (prefix, year) counters independent", func() {
			_, err := repo.NextValue(ctx, "PAY", 2025)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.NextValue(ctx, "PAY", 2025)
			Expect(err).NotTo(HaveOccurred())

			irValue, err := repo.NextValue(ctx, "IR", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(irValue).To(Equal(int64(1)))

			lastYear, err := repo.NextValue(ctx, "PAY", 2024)
			Expect(err).NotTo(HaveOccurred())
			Expect(lastYear).To(Equal(int64(1)))
		})

		It("should persist the counter row", func() {
			_, err := repo.NextValue(ctx, "NTE", 2025)
			Expect(err).NotTo(HaveOccurred())

			var row sequenceDatamodel.TicketSequence
			err = db.Where("prefix = ? AND year = ?", "NTE", 2025).First(&row).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(row.Value).To(Equal(int64(1)))
		})
	})

	Describe("legacy seeding", func() {
		It("should seed a first-use counter past already issued identifiers", func() {
			for _, ticketNo := range []string{"PAY-2025-0003", "PAY-2025-0007", "PAY-2025-0001"} {
				err := db.Create(&disputeDatamodel.PayDispute{
					TicketNo:    ticketNo,
					EmployeeID:  1,
					DisputeType: "underpayment",
					Subject:     "seeded",
					CreatedBy:   1,
				}).Error
				Expect(err).NotTo(HaveOccurred())
			}

			value, err := repo.NextValue(ctx, "PAY", 2025)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int64(8)))
		})

		It("should ignore identifiers from other years", func() {
			err := db.Create(&disputeDatamodel.PayDispute{
				TicketNo:    "PAY-2024-0099",
				EmployeeID:  1,
				DisputeType: "underpayment",
				Subject:     "seeded",
				CreatedBy:   1,
			}).Error
			Expect(err).NotTo(HaveOccurred())

			value, err := repo.NextValue(ctx, "PAY", 2025)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int64(1)))
		})

		It("should skip malformed suffixes instead of failing", func() {
			for _, docID := range []string{"IR-2025-BROKEN", "IR-2025-0004"} {
				err := db.Create(&irnteDatamodel.IRNTELog{
					DocID:      docID,
					DocType:    "IR",
					EmployeeID: 1,
					Subject:    "seeded",
					IssuedBy:   1,
				}).Error
				Expect(err).NotTo(HaveOccurred())
			}

			value, err := repo.NextValue(ctx, "IR", 2025)

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(int64(5)))
		})

		It("should keep IR and NTE sequences separate over the shared table", func() {
			err := db.Create(&irnteDatamodel.IRNTELog{
				DocID:      "IR-2025-0010",
				DocType:    "IR",
				EmployeeID: 1,
				Subject:    "seeded",
				IssuedBy:   1,
			}).Error
			Expect(err).NotTo(HaveOccurred())

			nteValue, err := repo.NextValue(ctx, "NTE", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(nteValue).To(Equal(int64(1)))

			irValue, err := repo.NextValue(ctx, "IR", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(irValue).To(Equal(int64(11)))
		})
	})
})
