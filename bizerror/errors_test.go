package bizerror_test

import (
	"net/http"

	"dutyroster/bizerror"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("ErrBadParam", func() {
		Describe("Error", func() {
			It("should return default message if cause is nil", func() {
				err := bizerror.ErrBadParam{}
				Expect(err.Error()).To(Equal("common.bad_param"))
			})
			It("should invoke the Error() function of cause property if cause is not nil", func() {
				err := bizerror.ErrBadParam{Cause: bizerror.ErrForbidden}
				Expect(err.Error()).To(Equal("forbidden"))
			})
		})

		Describe("Respond", func() {
			It("should respond with status 400 and the cause message", func() {
				err := bizerror.ErrBadParam{Cause: bizerror.ErrNotFound}
				detail := err.Respond()
				Expect(detail.Status).To(Equal(http.StatusBadRequest))
				Expect(detail.Code).To(Equal("common.bad_param"))
				Expect(detail.Message).To(Equal("record not found"))
			})
		})

		Describe("Unwrap", func() {
			It("should expose the cause", func() {
				err := bizerror.ErrBadParam{Cause: bizerror.ErrForbidden}
				Expect(err.Unwrap()).To(Equal(bizerror.ErrForbidden))
			})
		})
	})
})
