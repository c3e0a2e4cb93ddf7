package handlers

import (
	"time"

	"github.com/oksasatya/go-community-events/internal/application"
	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

type ageLimitDTO struct {
	Lower int `json:"lower" binding:"gte=0"`
	Upper int `json:"upper" binding:"gte=0"`
}

type eventResponse struct {
	ID           string      `json:"id"`
	CreatorID    string      `json:"creator_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	BannerImage  string      `json:"banner_image"`
	Location     string      `json:"location"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	AgeLimit     ageLimitDTO `json:"age_limit"`
	Capacity     int         `json:"capacity"`
	Tags         []string    `json:"tags"`
	Participants []string    `json:"participants"`
	Donations    []string    `json:"donations"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toEventResponse(e *entity.Event) eventResponse {
	return eventResponse{
		ID:           e.ID,
		CreatorID:    e.CreatorID,
		Title:        e.Title,
		Description:  e.Description,
		BannerImage:  e.BannerImage,
		Location:     e.Location,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		AgeLimit:     ageLimitDTO{Lower: e.AgeLimit.Lower, Upper: e.AgeLimit.Upper},
		Capacity:     e.Capacity,
		Tags:         nonNil(e.Tags),
		Participants: nonNil(e.Participants),
		Donations:    nonNil(e.Donations),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEventResponses(events []*entity.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

type userEventsResponse struct {
	Created  []eventResponse `json:"created"`
	Upcoming []eventResponse `json:"upcoming"`
	Passed   []eventResponse `json:"passed"`
}

func toUserEventsResponse(ue *application.UserEvents) userEventsResponse {
	return userEventsResponse{
		Created:  toEventResponses(ue.Created),
		Upcoming: toEventResponses(ue.Upcoming),
		Passed:   toEventResponses(ue.Passed),
	}
}

type locationDTO struct {
	ProvinceState string `json:"province_state"`
	Country       string `json:"country"`
}

type publicProfileResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	ProfilePicture string      `json:"profile_picture"`
	Location       locationDTO `json:"location"`
}

func toPublicProfile(u *entity.User) publicProfileResponse {
	return publicProfileResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Location:       locationDTO{ProvinceState: u.Location.ProvinceState, Country: u.Location.Country},
	}
}

// profileResponse is what the owner sees about themselves.
type profileResponse struct {
	publicProfileResponse
	Phone         string     `json:"phone"`
	DOB           *time.Time `json:"dob,omitempty"`
	UserType      string     `json:"user_type"`
	IsVerified    bool       `json:"is_verified"`
	Interests     []string   `json:"interests"`
	JoinedEvents  []string   `json:"joined_events"`
	CreatedEvents []string   `json:"created_events"`
	Donations     []string   `json:"donations"`
	BlogPosts     []string   `json:"blog_posts"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toProfile(u *entity.User) profileResponse {
	return profileResponse{
		publicProfileResponse: toPublicProfile(u),
		Phone:                 u.Phone,
		DOB:                   u.DOB,
		UserType:              string(u.UserType),
		IsVerified:            u.IsVerified,
		Interests:             nonNil(u.Interests),
		JoinedEvents:          nonNil(u.JoinedEvents),
		CreatedEvents:         nonNil(u.CreatedEvents),
		Donations:             nonNil(u.Donations),
		BlogPosts:             nonNil(u.BlogPosts),
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

type donationResponse struct {
	ID           string    `json:"id"`
	DonorID      string    `json:"donor_id"`
	EventID      string    `json:"event_id"`
	Amount       float64   `json:"amount"`
	DonationDate time.Time `json:"donation_date"`
}

func toDonationResponses(ds []*entity.Donation) []donationResponse {
	out := make([]donationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, donationResponse{
			ID:           d.ID,
			DonorID:      d.DonorID,
			EventID:      d.EventID,
			Amount:       d.Amount,
			DonationDate: d.DonationDate,
		})
	}
	return out
}

type receiptResponse struct {
	DonationID   string    `json:"donation_id"`
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	Amount       float64   `json:"amount"`
	DonationDate time.Time `json:"donation_date"`
}

func toReceiptResponse(r *application.DonationReceipt) receiptResponse {
	return receiptResponse{
		DonationID:   r.DonationID,
		EventID:      r.EventID,
		EventTitle:   r.EventTitle,
		Amount:       r.Amount,
		DonationDate: r.DonationDate,
	}
}

type blogPostResponse struct {
	ID               string    `json:"id"`
	AuthorID         string    `json:"author_id"`
	Title            string    `json:"title"`
	BannerImage      string    `json:"banner_image"`
	Category         string    `json:"category"`
	ShortDescription string    `json:"short_description"`
	BodyText         string    `json:"body_text"`
	PostDate         time.Time `json:"post_date"`
	LastModified     time.Time `json:"last_modified"`
}

func toBlogPostResponse(p *entity.BlogPost) blogPostResponse {
	return blogPostResponse{
		ID:               p.ID,
		AuthorID:         p.AuthorID,
		Title:            p.Title,
		BannerImage:      p.BannerImage,
		Category:         p.Category,
		ShortDescription: p.ShortDescription,
		BodyText:         p.BodyText,
		PostDate:         p.PostDate,
		LastModified:     p.LastModified,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
